package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/furoku/ultimate-todo-app/internal/config"
	"github.com/furoku/ultimate-todo-app/internal/routes"
)

func newServeCmd(a *app) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "APIサーバーを起動します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "起動時にスキーマを作成する")
	return cmd
}

// serve は ctx がキャンセルされるまでAPIサーバーを動かし、その後グレースフルに停止します。
func (a *app) serve(ctx context.Context, migrate bool) error {
	if a.cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	h, err := a.openDB(ctx, migrate)
	if err != nil {
		return err
	}
	defer h.Close()

	httpCfg := a.cfg.HTTP
	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: routes.SetupRouter(h.DB, h.Dialect, httpCfg, a.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info().
		Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		return err
	}
	a.logger.Info().Msg("shut down http server")
	return nil
}
