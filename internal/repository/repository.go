package repository

import (
	"context"
	"slot_machine/internal/model"
)

// SpinRepository журнал завершённых спинов. Только для аудита, баланс из него не восстанавливается
type SpinRepository interface {
	Save(ctx context.Context, spin model.SpinResult) error
	List(ctx context.Context, limit int) ([]model.SpinResult, error)
}

// StatsRepository статистика RTP в памяти процесса
type StatsRepository interface {
	UpdateState(bet, payout int)
	Stats() model.RTPStats
	DeviationCheck() bool
}
