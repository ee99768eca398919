package model

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventBalanceChanged EventKind = "balance_changed"
	EventBetChanged     EventKind = "bet_changed"
	EventSpinStarted    EventKind = "spin_started"
	EventReelStopped    EventKind = "reel_stopped"
	EventSpinEvaluated  EventKind = "spin_evaluated"
)

// Event исходящее событие сессии. Заполнены только поля, относящиеся к Kind
type Event struct {
	Kind    EventKind
	SpinID  uuid.UUID
	At      time.Time
	Balance int          // BalanceChanged
	Bet     int          // BetChanged, SpinStarted
	Reel    int          // ReelStopped
	Symbols []SymbolKind // ReelStopped
	Result  *SpinResult  // SpinEvaluated
}
