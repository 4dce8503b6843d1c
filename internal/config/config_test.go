package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBoardDefaults(t *testing.T) {
	cfg, err := LoadBoard()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTPAddress)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.MessageTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadBoardOverrides(t *testing.T) {
	t.Setenv("ACTIVITIES_API_URL", "http://api:9000")
	t.Setenv("BOARD_MESSAGE_TIMEOUT", "250ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadBoard()
	require.NoError(t, err)
	assert.Equal(t, "http://api:9000", cfg.APIBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.MessageTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadBoardRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("BOARD_MESSAGE_TIMEOUT", "0s")

	_, err := LoadBoard()
	require.Error(t, err)
}

func TestLoadAPIDatabase(t *testing.T) {
	t.Setenv("ACTIVITIES_STORE", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "school")

	cfg, err := LoadAPI()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "http://localhost:8081/", cfg.BoardURL)
	assert.Equal(t, "host=db port=5432 user=postgres password=postgres dbname=school sslmode=disable", cfg.Database.DSN())
}

func TestLoadAPIRejectsUnknownStore(t *testing.T) {
	t.Setenv("ACTIVITIES_STORE", "redis")

	_, err := LoadAPI()
	require.Error(t, err)
}
