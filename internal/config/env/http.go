package env

import (
	"fmt"
	"net"
	"os"
	"slot_machine/internal/config"
	"strconv"
)

const (
	httpAddressEnvName = "HTTP_ADDRESS"
	spinRateEnvName    = "SPIN_RATE_RPS"
	spinBurstEnvName   = "SPIN_RATE_BURST"

	// Только локальный интерфейс: сессия одна и принадлежит локальному UI
	defaultHTTPAddress = "127.0.0.1:8080"
	defaultSpinRate    = 5
	defaultSpinBurst   = 10
)

type httpConfig struct {
	address string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	address := os.Getenv(httpAddressEnvName)
	if len(address) == 0 {
		address = defaultHTTPAddress
	}

	if _, _, err := net.SplitHostPort(address); err != nil {
		return nil, fmt.Errorf("invalid http address %q: %w", address, err)
	}

	return &httpConfig{
		address: address,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}

type rateLimitConfig struct {
	rps   int
	burst int
}

func NewRateLimitConfig() (config.RateLimitConfig, error) {
	rps, err := intFromEnv(spinRateEnvName, defaultSpinRate)
	if err != nil {
		return nil, err
	}
	burst, err := intFromEnv(spinBurstEnvName, defaultSpinBurst)
	if err != nil {
		return nil, err
	}
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("spin rate limit must be positive, got %d/%d", rps, burst)
	}

	return &rateLimitConfig{
		rps:   rps,
		burst: burst,
	}, nil
}

func (cfg *rateLimitConfig) RPS() int {
	return cfg.rps
}

func (cfg *rateLimitConfig) Burst() int {
	return cfg.burst
}

func intFromEnv(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
