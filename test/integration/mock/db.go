package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory ledger database that is rebuilt between scenarios.
type Db struct {
	DbConn *gorm.DB
	models []any
	tables map[string]any
}

// NewDb opens the shared database once and migrates models into it.
func NewDb(models []any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
		tables: make(map[string]any, len(models)),
	}
	for _, model := range models {
		stmt := &gorm.Statement{DB: dbConn}
		if err := stmt.Parse(model); err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}
		newDbMock.tables[stmt.Schema.Table] = model
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB recreates the schema, retrying while SQLite reports the tables as busy.
func (d *Db) ClearDB() (err error) {
	for attempt := 1; attempt <= 5; attempt++ {
		if err = d.init(); err != nil {
			continue
		}
		if err = d.checkTables(); err != nil {
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to clear database after 5 attempts: %w", err)
}

func (d *Db) init() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		// Reverse order so rows referencing other tables go first.
		for i := len(d.models) - 1; i >= 0; i-- {
			stmt := &gorm.Statement{DB: tx}
			if err := stmt.Parse(d.models[i]); err != nil {
				return err
			}
			if err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", stmt.Schema.Table)).Error; err != nil {
				return err
			}
		}
		return tx.AutoMigrate(d.models...)
	})
}

func (d *Db) checkTables() error {
	for table, model := range d.tables {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// GetModel returns the model stored in table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.tables[strings.TrimSpace(table)]
	return model, ok
}
