package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionState то, что видит внешний UI
type SessionState struct {
	Phase        SessionPhase
	Bet          BetState
	SpinID       uuid.UUID
	PendingReels []int
	Reels        []ReelState
}

func (s SessionState) CanSpin() bool {
	return s.Phase == PhaseIdle && s.Bet.Affordable()
}

// SpinResult итог одного спина
type SpinResult struct {
	ID           uuid.UUID
	Bet          int
	Grid         Grid
	Win          WinResult
	BalanceAfter int
	FinishedAt   time.Time
}
