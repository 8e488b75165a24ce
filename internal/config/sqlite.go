package config

import (
	"context"
	"database/sql"

	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// NewSQLite opens the file-backed record store used when DB_DRIVER=sqlite.
func NewSQLite(config *koanf.Koanf, log *zap.Logger) *sql.DB {
	path := String(config, "SQLITE_PATH", "userdb.sqlite")

	db, err := OpenSQLite(path)
	if err != nil {
		log.Fatal("failed to open sqlite database", zap.String("path", path), zap.Error(err))
	}

	return db
}

// OpenSQLite opens path with a single connection, which also keeps an
// in-memory database alive for the lifetime of the handle.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, err = db.ExecContext(context.Background(), "PRAGMA busy_timeout = 5000")
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
