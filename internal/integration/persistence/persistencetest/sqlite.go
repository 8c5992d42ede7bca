// Package persistencetest provides an in-memory ledger database for tests.
package persistencetest

import (
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/integration/persistence"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

// NewDB opens a private in-memory SQLite database with the ledger schema migrated.
// The pool holds a single connection so every session sees the same database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(model.LedgerModels()...); err != nil {
		t.Fatalf("failed to migrate ledger schema: %v", err)
	}

	return db
}

// NewStore returns a ledger store over a fresh in-memory database.
func NewStore(t testing.TB) (adapter.LedgerStore, *gorm.DB) {
	t.Helper()

	db := NewDB(t)
	return persistence.NewLedgerStore(db, 5*time.Second), db
}
