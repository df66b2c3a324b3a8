// Package logger はzerologによるアプリケーションロガーを構築します。
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/config"
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
}

// New は環境に応じたレベルと出力形式のロガーを返します。
//
// local ではコンソール形式、それ以外ではJSONを標準出力に書き出します。
func New(env string) zerolog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter は出力先を指定してロガーを作成します。
func NewWithWriter(env string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	w := out
	switch env {
	case config.EnvDev:
		level = zerolog.DebugLevel
	case config.EnvProd:
		level = zerolog.InfoLevel
	case config.EnvLocal:
		level = zerolog.TraceLevel

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = out
		w = consoleWriter
	case config.EnvTest:
		level = zerolog.WarnLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()
}
