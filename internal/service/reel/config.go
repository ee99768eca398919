package reel

import (
	"fmt"
	"slot_machine/internal/config"
	"slot_machine/internal/model"
	"time"
)

// Доли длительности спина
const (
	accelerateShare = 0.2
	decelerateShare = 0.3
	cruiseEnd       = 1 - decelerateShare
)

// Config параметры анимации барабана
type Config struct {
	VisibleRows   int
	BufferSymbols int           // Запас символов сверх видимых
	SpinDuration  time.Duration // Время от конца задержки до остановки
	CascadeStep   time.Duration // Задержка старта на каждый следующий барабан
	MinSpeed      float64       // Единиц в секунду
	MaxSpeed      float64
	SymbolHeight  float64
}

func DefaultConfig() Config {
	return Config{
		VisibleRows:   3,
		BufferSymbols: 4,
		SpinDuration:  2 * time.Second,
		CascadeStep:   150 * time.Millisecond,
		MinSpeed:      300,
		MaxSpeed:      2000,
		SymbolHeight:  100,
	}
}

// ConfigFrom параметры анимации из настроек движка
func ConfigFrom(cfg config.EngineConfig) Config {
	return Config{
		VisibleRows:   cfg.VisibleRows(),
		BufferSymbols: cfg.BufferSymbols(),
		SpinDuration:  cfg.SpinDuration(),
		CascadeStep:   cfg.CascadeStep(),
		MinSpeed:      cfg.MinSpeed(),
		MaxSpeed:      cfg.MaxSpeed(),
		SymbolHeight:  cfg.SymbolHeight(),
	}
}

func (c Config) Validate() error {
	switch {
	case c.VisibleRows <= 0:
		return fmt.Errorf("%w: visible rows must be positive", model.ErrConfiguration)
	case c.BufferSymbols < 0:
		return fmt.Errorf("%w: negative buffer size", model.ErrConfiguration)
	case c.SpinDuration <= 0:
		return fmt.Errorf("%w: spin duration must be positive", model.ErrConfiguration)
	case c.CascadeStep < 0:
		return fmt.Errorf("%w: negative cascade step", model.ErrConfiguration)
	case c.MinSpeed < 0 || c.MaxSpeed < c.MinSpeed:
		return fmt.Errorf("%w: invalid speed range [%v, %v]", model.ErrConfiguration, c.MinSpeed, c.MaxSpeed)
	case c.SymbolHeight <= 0:
		return fmt.Errorf("%w: symbol height must be positive", model.ErrConfiguration)
	}
	return nil
}

// StripSize длина ленты барабана
func (c Config) StripSize() int {
	return c.VisibleRows + c.BufferSymbols
}

// Middle индекс среднего видимого ряда
func (c Config) Middle() int {
	return c.VisibleRows / 2
}
