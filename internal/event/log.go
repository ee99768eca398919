package event

import (
	"context"
	"slot_machine/internal/model"

	"go.uber.org/zap"
)

// LogSink пишет события в лог
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("events")}
}

func (s *LogSink) Publish(_ context.Context, e model.Event) {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.Stringer("spin_id", e.SpinID),
	}
	switch e.Kind {
	case model.EventBalanceChanged:
		fields = append(fields, zap.Int("balance", e.Balance))
	case model.EventBetChanged, model.EventSpinStarted:
		fields = append(fields, zap.Int("bet", e.Bet))
	case model.EventReelStopped:
		fields = append(fields, zap.Int("reel", e.Reel), zap.Stringers("symbols", e.Symbols))
	case model.EventSpinEvaluated:
		if e.Result != nil {
			fields = append(fields, zap.Int("win", e.Result.Win.Total), zap.Int("lines", len(e.Result.Win.Lines)))
		}
	}
	s.logger.Debug("session event", fields...)
}
