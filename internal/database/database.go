// Package database はデータベース接続の初期化とスキーマ管理を行います。
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/furoku/ultimate-todo-app/internal/config"
)

// Dialect はSQL方言の違い (プレースホルダやDDL) を吸収します。
type Dialect string

const (
	MySQL    Dialect = config.DriverMySQL
	Postgres Dialect = config.DriverPostgres
	SQLite   Dialect = config.DriverSQLite
)

// DriverName は database/sql に登録されているドライバー名を返します。
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	default:
		return "mysql"
	}
}

// Rebind は "?" プレースホルダを方言に合わせて書き換えます。
// PostgreSQLでは $1, $2, ... に置き換えます。
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLiteDSN は外部キー制約を有効にしたSQLiteの接続文字列を返します。
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open は設定に従ってデータベース接続を初期化し、疎通を確認します。
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*sql.DB, Dialect, error) {
	dialect := Dialect(cfg.Driver)
	dsn := cfg.DSN()
	if dialect == SQLite {
		dsn = SQLiteDSN(cfg.Path)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Driver).
			Msg("failed to open database connection")
		return nil, "", fmt.Errorf("could not open database: %w", err)
	}

	if dialect == SQLite {
		// SQLiteは書き込みが直列化されるため接続を1本に絞る
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		logger.Error().
			Err(err).
			Str("driver", cfg.Driver).
			Msg("failed to ping database")
		return nil, "", fmt.Errorf("could not ping database: %w", err)
	}

	logger.Info().
		Str("driver", cfg.Driver).
		Str("host", cfg.Host).
		Str("name", cfg.Name).
		Msg("connected to database")
	return db, dialect, nil
}
