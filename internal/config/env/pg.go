package env

import (
	"errors"
	"os"
	"slot_machine/internal/config"
)

const (
	dsnName = "PG_DSN"
)

// ErrNotConfigured необязательная зависимость не задана в окружении
var ErrNotConfigured = errors.New("not configured")

type pgConfig struct {
	dsn string
}

func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, errors.Join(ErrNotConfigured, errors.New("pg dsn not found"))
	}

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
