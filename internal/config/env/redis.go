package env

import (
	"errors"
	"os"
	"slot_machine/internal/config"
)

const (
	redisAddrEnvName    = "REDIS_ADDR"
	redisChannelEnvName = "REDIS_CHANNEL"

	defaultRedisChannel = "slot:session:events"
)

type redisConfig struct {
	addr    string
	channel string
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrEnvName)
	if len(addr) == 0 {
		return nil, errors.Join(ErrNotConfigured, errors.New("redis address not found"))
	}

	channel := os.Getenv(redisChannelEnvName)
	if len(channel) == 0 {
		channel = defaultRedisChannel
	}

	return &redisConfig{
		addr:    addr,
		channel: channel,
	}, nil
}

func (cfg *redisConfig) Addr() string {
	return cfg.addr
}

func (cfg *redisConfig) Channel() string {
	return cfg.channel
}
