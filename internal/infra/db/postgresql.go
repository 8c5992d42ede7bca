// Package db opens and manages the ledger's PostgreSQL connection.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bizledger/backend/config"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

// Database owns the ledger store connection from process start to shutdown.
type Database struct {
	db *gorm.DB
}

// slogWriter routes gorm's warnings and slow-query reports to slog.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...interface{}) {
	slog.Warn("Database", "detail", fmt.Sprintf(format, args...))
}

// Open connects to PostgreSQL, retrying the first ping so the API and CLI can
// start alongside a database container that is still booting.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*Database, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             cfg.SlowQueryThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	database := &Database{db: gdb}

	attempts := max(cfg.ConnectAttempts, 1)
	for attempt := 1; ; attempt++ {
		err = database.Ping(ctx)
		if err == nil {
			break
		}
		if attempt == attempts {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempts, err)
		}

		wait := time.Duration(attempt) * time.Second
		slog.Warn("Database not reachable yet",
			"attempt", attempt,
			"retry_in", wait,
			"error", err,
		)
		select {
		case <-ctx.Done():
			_ = sqlDB.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return database, nil
}

// DB returns the GORM handle the ledger store is built on.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Ping checks the connection with a short deadline.
func (d *Database) Ping(ctx context.Context) error {
	return Ping(ctx, d.db)
}

// SyncSchema creates or widens the ledger tables from the gorm models. Deployed
// databases are migrated with `ledgerctl migrate` instead.
func (d *Database) SyncSchema() error {
	if err := d.db.AutoMigrate(model.LedgerModels()...); err != nil {
		return fmt.Errorf("failed to sync ledger schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	slog.Info("Database connection closed")
	return nil
}

// Ping checks any gorm connection with a two second deadline.
func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// HealthChecker returns a function reporting whether the database answers a ping.
func HealthChecker(gdb *gorm.DB) func() bool {
	return func() bool {
		if err := Ping(context.Background(), gdb); err != nil {
			slog.Error("Database health check failed", "error", err)
			return false
		}
		return true
	}
}
