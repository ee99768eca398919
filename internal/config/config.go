package config

import (
	"slot_machine/internal/model"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// EngineConfig параметры барабанов и ставки из config.yaml
type EngineConfig interface {
	Reels() int
	VisibleRows() int
	BufferSymbols() int
	SpinDuration() time.Duration
	CascadeStep() time.Duration
	MinSpeed() float64
	MaxSpeed() float64
	SymbolHeight() float64
	TickRate() int
	Seed() uint64
	StatsWindow() int
	Bet() model.BetState
}

type HTTPConfig interface {
	Address() string
}

type RateLimitConfig interface {
	RPS() int
	Burst() int
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Channel() string
}

type LogConfig interface {
	Level() string
	JSON() bool
}
