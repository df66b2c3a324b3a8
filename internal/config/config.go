// Package config はアプリケーションの設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
	EnvTest  = "test"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Env    string `env:"ENV" env-default:"local"`
	HTTP   HTTPConfig
	DB     DatabaseConfig
	Client ClientConfig
}

// HTTPConfig はAPIサーバーの設定です。
type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:""`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	// FrontendURL はCORSで許可するNext.jsのオリジンです。
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`
}

// DatabaseConfig はデータベース接続の設定です。
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" env-default:"mysql"`
	User            string        `env:"DB_USER"`
	Pass            string        `env:"DB_PASS"`
	Host            string        `env:"DB_HOST" env-default:"127.0.0.1"`
	Port            string        `env:"DB_PORT"`
	Name            string        `env:"DB_NAME" env-default:"todo"`
	SSLMode         string        `env:"DB_SSL_MODE" env-default:"disable"`
	Path            string        `env:"DATABASE_PATH" env-default:"data.sqlite.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
	PingTimeout     time.Duration `env:"DB_PING_TIMEOUT" env-default:"10s"`
}

// ClientConfig はCLIからAPIを呼び出す際の設定です。
type ClientConfig struct {
	BaseURL string        `env:"API_URL" env-default:"http://localhost:8080"`
	Timeout time.Duration `env:"API_TIMEOUT" env-default:"10s"`
}

// Load は .env ファイル (存在すれば) と環境変数から設定を読み込みます。
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// .env が無い環境 (コンテナなど) では環境変数のみを使う
	_ = godotenv.Load(envFiles...)

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("could not read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は環境名とAPIのURLを検証します。
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal, EnvTest:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}

	if _, err := url.ParseRequestURI(c.Client.BaseURL); err != nil {
		return fmt.Errorf("invalid API_URL: %w", err)
	}
	return nil
}

// Validate はデータベース接続の設定を検証します。
// APIを呼ぶだけのコマンドでは DB_* は不要なので、接続する直前に呼びます。
func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPostgres:
		if c.User == "" {
			return fmt.Errorf("DB_USER is required for driver %s", c.Driver)
		}
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for driver %s", c.Driver)
		}
	default:
		return fmt.Errorf("unknown database driver: %s", c.Driver)
	}
	return nil
}

// DSN はドライバーに応じた接続文字列を組み立てます。
func (c DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		port := c.Port
		if port == "" {
			port = "5432"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Pass),
			Host:     c.Host + ":" + port,
			Path:     "/" + c.Name,
			RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
		}
		return u.String()
	case DriverSQLite:
		return c.Path
	default:
		port := c.Port
		if port == "" {
			port = "3306"
		}
		// user:pass@tcp(db:3306)/dbname
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&clientFoundRows=true", c.User, c.Pass, c.Host, port, c.Name)
	}
}
