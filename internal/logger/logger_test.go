package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furoku/ultimate-todo-app/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.EnvProd, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("todo_id", "abc").Msg("created todo")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "created todo", entry["message"])
	assert.Equal(t, "abc", entry["todo_id"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "pid")
}

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		env   string
		level zerolog.Level
	}{
		{config.EnvDev, zerolog.DebugLevel},
		{config.EnvProd, zerolog.InfoLevel},
		{config.EnvLocal, zerolog.TraceLevel},
		{config.EnvTest, zerolog.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			log := NewWithWriter(tt.env, &bytes.Buffer{})
			assert.Equal(t, tt.level, log.GetLevel())
		})
	}
}
