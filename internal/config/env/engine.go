package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slot_machine/internal/config"
	"slot_machine/internal/model"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configPathEnvName = "CONFIG_PATH"

type betYAML struct {
	Balance int `yaml:"balance" validate:"gte=0"`
	Current int `yaml:"current" validate:"gt=0"`
	Min     int `yaml:"min" validate:"gt=0"`
	Max     int `yaml:"max" validate:"gtefield=Min"`
	Step    int `yaml:"step" validate:"gt=0"`
}

type engineYAML struct {
	Reels         int           `yaml:"reels" validate:"gt=0"`
	VisibleRows   int           `yaml:"visible_rows" validate:"gt=0"`
	BufferSymbols int           `yaml:"buffer_symbols" validate:"gte=0"`
	SpinDuration  time.Duration `yaml:"spin_duration" validate:"gt=0"`
	CascadeStep   time.Duration `yaml:"cascade_step" validate:"gte=0"`
	MinSpeed      float64       `yaml:"min_speed" validate:"gte=0"`
	MaxSpeed      float64       `yaml:"max_speed" validate:"gtefield=MinSpeed"`
	SymbolHeight  float64       `yaml:"symbol_height" validate:"gt=0"`
	TickRate      int           `yaml:"tick_rate" validate:"gt=0,lte=1000"`
	Seed          uint64        `yaml:"seed"`
	StatsWindow   int           `yaml:"stats_window" validate:"gt=0"`
	Bet           betYAML       `yaml:"bet"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type engineConfig struct {
	raw engineYAML
}

func defaultEngineYAML() engineYAML {
	return engineYAML{
		Reels:         5,
		VisibleRows:   3,
		BufferSymbols: 4,
		SpinDuration:  2 * time.Second,
		CascadeStep:   150 * time.Millisecond,
		MinSpeed:      300,
		MaxSpeed:      2000,
		SymbolHeight:  100,
		TickRate:      60,
		StatsWindow:   500,
		Bet: betYAML{
			Balance: 1000,
			Current: 50,
			Min:     10,
			Max:     1000,
			Step:    10,
		},
	}
}

// ConfigPath путь к config.yaml из окружения
func ConfigPath() string {
	if p := os.Getenv(configPathEnvName); len(p) > 0 {
		return p
	}
	return "config.yaml"
}

// NewEngineConfigFromYAML читает настройки движка. Отсутствующий файл даёт значения по умолчанию,
// поля, которых нет в файле, тоже берутся по умолчанию
func NewEngineConfigFromYAML(path string) (config.EngineConfig, error) {
	raw := defaultEngineYAML()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read engine config: %w", err)
	default:
		if err = yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", model.ErrConfiguration, path, err)
		}
	}

	cfg := &engineConfig{raw: raw}
	if err = cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *engineConfig) validate() error {
	if err := validate.Struct(c.raw); err != nil {
		return fmt.Errorf("%w: %v", model.ErrConfiguration, err)
	}
	// Шаг и попадание текущей ставки в сетку проверяет сама модель
	return c.Bet().Validate()
}

func (c *engineConfig) Reels() int                  { return c.raw.Reels }
func (c *engineConfig) VisibleRows() int            { return c.raw.VisibleRows }
func (c *engineConfig) BufferSymbols() int          { return c.raw.BufferSymbols }
func (c *engineConfig) SpinDuration() time.Duration { return c.raw.SpinDuration }
func (c *engineConfig) CascadeStep() time.Duration  { return c.raw.CascadeStep }
func (c *engineConfig) MinSpeed() float64           { return c.raw.MinSpeed }
func (c *engineConfig) MaxSpeed() float64           { return c.raw.MaxSpeed }
func (c *engineConfig) SymbolHeight() float64       { return c.raw.SymbolHeight }
func (c *engineConfig) TickRate() int               { return c.raw.TickRate }
func (c *engineConfig) Seed() uint64                { return c.raw.Seed }
func (c *engineConfig) StatsWindow() int            { return c.raw.StatsWindow }

func (c *engineConfig) Bet() model.BetState {
	return model.BetState{
		Balance:    c.raw.Bet.Balance,
		CurrentBet: c.raw.Bet.Current,
		MinBet:     c.raw.Bet.Min,
		MaxBet:     c.raw.Bet.Max,
		Step:       c.raw.Bet.Step,
	}
}
