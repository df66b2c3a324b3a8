package database

import (
	"context"
	"database/sql"
	"fmt"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100) COLLATE utf8mb4_bin NOT NULL UNIQUE,
		color VARCHAR(9) NOT NULL DEFAULT '#6366F1',
		created_at DATETIME(3) NOT NULL,
		updated_at DATETIME(3) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'TODO',
		priority VARCHAR(20) NOT NULL DEFAULT 'MEDIUM',
		due_date DATETIME(3) NULL,
		completed_at DATETIME(3) NULL,
		category_id VARCHAR(36) NULL,
		created_at DATETIME(3) NOT NULL,
		updated_at DATETIME(3) NOT NULL,
		INDEX idx_todos_category_id (category_id),
		INDEX idx_todos_created_at (created_at),
		CONSTRAINT fk_todos_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		color VARCHAR(9) NOT NULL DEFAULT '#6366F1',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'TODO',
		priority VARCHAR(20) NOT NULL DEFAULT 'MEDIUM',
		due_date TIMESTAMPTZ NULL,
		completed_at TIMESTAMPTZ NULL,
		category_id VARCHAR(36) NULL REFERENCES categories(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_category_id ON todos (category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos (created_at)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL DEFAULT '#6366F1',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NULL,
		status TEXT NOT NULL DEFAULT 'TODO',
		priority TEXT NOT NULL DEFAULT 'MEDIUM',
		due_date DATETIME NULL,
		completed_at DATETIME NULL,
		category_id TEXT NULL REFERENCES categories(id) ON DELETE SET NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_category_id ON todos (category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos (created_at)`,
}

// Schema は方言ごとのテーブル定義を返します。
func (d Dialect) Schema() []string {
	switch d {
	case Postgres:
		return postgresSchema
	case SQLite:
		return sqliteSchema
	default:
		return mysqlSchema
	}
}

// Migrate は categories と todos のテーブルを作成します。既に存在する場合は何もしません。
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	for i, stmt := range dialect.Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
