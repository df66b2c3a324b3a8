// Package main はTodoアプリのAPIサーバーとCLIです。
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/furoku/ultimate-todo-app/internal/client"
	"github.com/furoku/ultimate-todo-app/internal/config"
	"github.com/furoku/ultimate-todo-app/internal/database"
	"github.com/furoku/ultimate-todo-app/internal/logger"
	"github.com/furoku/ultimate-todo-app/internal/notify"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app はサブコマンド間で共有する設定とロガーです。
type app struct {
	envFiles []string
	apiURL   string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "todo",
		Short:        "究極のTodoアプリ - APIサーバーとコマンドラインクライアント",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "読み込む .env ファイル")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "APIのURL (API_URL より優先)")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newTodosCmd(a),
		newCategoriesCmd(a),
	)
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.Client.BaseURL = a.apiURL
	}
	a.cfg = cfg
	a.logger = logger.NewWithWriter(cfg.Env, logOut)
	return nil
}

func (a *app) client() *client.Client {
	return client.New(a.cfg.Client.BaseURL, a.cfg.Client.Timeout)
}

func (a *app) notifier(out io.Writer) notify.Notifier {
	return notify.NewConsole(out)
}

// openDB はデータベースに接続します。migrate が true ならスキーマも作成します。
func (a *app) openDB(ctx context.Context, migrate bool) (*databaseHandle, error) {
	if err := a.cfg.DB.Validate(); err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}
	db, dialect, err := database.Open(ctx, a.cfg.DB, a.logger)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			db.Close()
			return nil, err
		}
		a.logger.Info().
			Str("driver", string(dialect)).
			Msg("database migrated")
	}
	return &databaseHandle{DB: db, Dialect: dialect}, nil
}
