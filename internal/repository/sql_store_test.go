package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_busy_timeout=5000")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := CreateTables(context.Background(), db, DialectSQLite); err != nil {
		t.Fatalf("CreateTables: %v", err)
	}
	return db
}

func TestSQLStoreSQLite(t *testing.T) {
	exerciseStore(t, NewSQLStore(openTestSQLite(t)))
}

func TestCreateTablesIsIdempotent(t *testing.T) {
	db := openTestSQLite(t)
	if err := CreateTables(context.Background(), db, DialectSQLite); err != nil {
		t.Fatalf("second CreateTables: %v", err)
	}
}

func TestCreateTablesUnknownDialect(t *testing.T) {
	db := openTestSQLite(t)
	if err := CreateTables(context.Background(), db, Dialect("oracle")); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}
