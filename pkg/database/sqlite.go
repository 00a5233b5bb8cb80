package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/noah-isme/term-tracker/pkg/config"
)

// NewSQLite returns a configured SQLite client for the given database file,
// creating the file when absent.
func NewSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	busyTimeout := cfg.BusyTimeoutMS
	if busyTimeout <= 0 {
		busyTimeout = 5000
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=%d&_loc=auto",
		cfg.Path,
		busyTimeout,
	)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Single writer connection; SQLite serialises writes anyway and a
	// shared connection keeps transaction semantics predictable.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
