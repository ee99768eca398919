package session

import (
	"context"
	"errors"
	"slot_machine/internal/service"
	"time"

	"go.uber.org/zap"
)

// Самый длинный шаг, который получает сессия, в интервалах таймера
const maxStepIntervals = 4

// Driver общий таймер, который двигает сессию с постоянной частотой
type Driver struct {
	svc      service.SessionService
	interval time.Duration
	logger   *zap.Logger
}

func NewDriver(svc service.SessionService, tickRate int, logger *zap.Logger) *Driver {
	if tickRate <= 0 {
		tickRate = 60
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		svc:      svc,
		interval: time.Second / time.Duration(tickRate),
		logger:   logger.Named("driver"),
	}
}

func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Run тикает до отмены контекста. dt равен реально прошедшему времени между тиками,
// но не больше maxStepIntervals интервалов: после задержки получателей анимация продолжается, а не перескакивает в конец
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("tick driver started", zap.Duration("interval", d.interval))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("tick driver stopped")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case now := <-ticker.C:
			d.svc.Tick(ctx, d.step(now.Sub(last)))
			last = now
		}
	}
}

func (d *Driver) step(elapsed time.Duration) time.Duration {
	limit := maxStepIntervals * d.interval
	if elapsed > limit {
		d.logger.Debug("tick step capped", zap.Duration("elapsed", elapsed), zap.Duration("step", limit))
		return limit
	}
	return elapsed
}
