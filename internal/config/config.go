// Package config centralises configuration parsing for the board and the
// activities API. Values come from environment variables; the mains load an
// optional .env file first.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Board captures runtime configuration for the activity board front-end.
type Board struct {
	HTTPAddress    string        `env:"BOARD_HTTP_ADDRESS" envDefault:":8081"`
	APIBaseURL     string        `env:"ACTIVITIES_API_URL" envDefault:"http://localhost:8080"`
	MessageTimeout time.Duration `env:"BOARD_MESSAGE_TIMEOUT" envDefault:"5s"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
}

// API captures runtime configuration for the activities API.
type API struct {
	HTTPAddress string     `env:"API_HTTP_ADDRESS" envDefault:":8080"`
	Store       string     `env:"ACTIVITIES_STORE" envDefault:"memory"`
	BoardURL    string     `env:"BOARD_URL" envDefault:"http://localhost:8081/"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Database    Database   `envPrefix:"DB_"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"activities"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// StoreMemory and StorePostgres are the accepted ACTIVITIES_STORE values.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// LoadBoard reads board configuration from the environment.
func LoadBoard() (Board, error) {
	var cfg Board
	if err := env.Parse(&cfg); err != nil {
		return Board{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MessageTimeout <= 0 {
		return Board{}, fmt.Errorf("BOARD_MESSAGE_TIMEOUT must be positive, got %s", cfg.MessageTimeout)
	}
	return cfg, nil
}

// LoadAPI reads API configuration from the environment.
func LoadAPI() (API, error) {
	var cfg API
	if err := env.Parse(&cfg); err != nil {
		return API{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Store {
	case StoreMemory, StorePostgres:
	default:
		return API{}, fmt.Errorf("ACTIVITIES_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, cfg.Store)
	}
	return cfg, nil
}
