package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the DDL flavour used by CreateTables.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

var mysqlTables = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(36) NOT NULL UNIQUE,
		course_number VARCHAR(32) NOT NULL,
		name VARCHAR(255) NOT NULL,
		INDEX idx_courses_number (course_number)
	) CHARACTER SET utf8mb4`,
	`CREATE TABLE IF NOT EXISTS lecturers (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(36) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL
	) CHARACTER SET utf8mb4`,
	`CREATE TABLE IF NOT EXISTS sections (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(36) NOT NULL UNIQUE,
		course_id VARCHAR(36) NOT NULL,
		lecturer_id VARCHAR(36) NOT NULL,
		INDEX idx_sections_course (course_id)
	) CHARACTER SET utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reviews (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		id VARCHAR(36) NOT NULL UNIQUE,
		section_id VARCHAR(36) NOT NULL,
		body TEXT NOT NULL,
		rating TINYINT NOT NULL,
		INDEX idx_reviews_section (section_id)
	) CHARACTER SET utf8mb4`,
}

var sqliteTables = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		course_number TEXT NOT NULL,
		name TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_number ON courses (course_number)`,
	`CREATE TABLE IF NOT EXISTS lecturers (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sections (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		course_id TEXT NOT NULL,
		lecturer_id TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_course ON sections (course_id)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		section_id TEXT NOT NULL,
		body TEXT NOT NULL,
		rating INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_section ON reviews (section_id)`,
}

// CreateTables creates the four tables when they are missing. Existing
// tables are left untouched; there is no migration support.
func CreateTables(ctx context.Context, db *sql.DB, d Dialect) error {
	var stmts []string
	switch d {
	case DialectMySQL:
		stmts = mysqlTables
	case DialectSQLite:
		stmts = sqliteTables
	default:
		return fmt.Errorf("unknown sql dialect %q", d)
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}
