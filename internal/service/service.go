package service

import (
	"context"
	"slot_machine/internal/model"
	"time"
)

// SessionService управление единственной игровой сессией.
// Отклонённые команды молча игнорируются
type SessionService interface {
	StartSpin(ctx context.Context)
	ChangeBet(ctx context.Context, delta int)
	Tick(ctx context.Context, dt time.Duration)

	GetSymbolGrid() model.Grid
	State() model.SessionState
	LastResult() (model.SpinResult, bool)
	Paylines() []model.Payline
}
