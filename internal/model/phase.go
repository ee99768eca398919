package model

import "time"

// ReelPhase фаза барабана
type ReelPhase int

const (
	ReelIdle ReelPhase = iota
	ReelDelayed
	ReelAccelerating
	ReelCruising
	ReelDecelerating
	ReelStopped
)

var reelPhaseNames = [...]string{"idle", "delayed", "accelerating", "cruising", "decelerating", "stopped"}

func (p ReelPhase) String() string {
	if p < ReelIdle || p > ReelStopped {
		return "unknown"
	}
	return reelPhaseNames[p]
}

// Spinning барабан в движении или ждёт старта
func (p ReelPhase) Spinning() bool {
	return p != ReelIdle && p != ReelStopped
}

// ReelState снимок состояния барабана
type ReelState struct {
	Index      int
	Phase      ReelPhase
	Elapsed    time.Duration // Время с конца задержки
	StartDelay time.Duration
	Speed      float64
	Outcome    SymbolKind // Имеет смысл только после старта
	Drawn      bool
}

// SessionPhase фаза сессии. Значения совпадают с состояниями автомата
type SessionPhase string

const (
	PhaseIdle       SessionPhase = "idle"
	PhaseSpinning   SessionPhase = "spinning"
	PhaseEvaluating SessionPhase = "evaluating"
)
