package env

import (
	"fmt"
	"os"
	"slot_machine/internal/config"
	"strings"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logFormatEnvName = "LOG_FORMAT"
)

type logConfig struct {
	level string
	json  bool
}

func NewLogConfig() (config.LogConfig, error) {
	level := strings.ToLower(os.Getenv(logLevelEnvName))
	if len(level) == 0 {
		level = "info"
	}

	format := strings.ToLower(os.Getenv(logFormatEnvName))
	switch format {
	case "", "json", "console":
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return &logConfig{
		level: level,
		json:  format != "console",
	}, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) JSON() bool {
	return cfg.json
}
