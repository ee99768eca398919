package session

import (
	"context"
	"fmt"
	"slot_machine/internal/event"
	"slot_machine/internal/model"
	"slot_machine/internal/service"
	"slot_machine/internal/service/payline"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// События автомата сессии
const (
	eventSpin     = "spin"
	eventEvaluate = "evaluate"
	eventSettle   = "settle"
)

// Reel то, что сессии нужно от барабана
type Reel interface {
	Start() bool
	Tick(dt time.Duration) bool
	Stopped() bool
	Visible() []model.SymbolKind
	State() model.ReelState
}

type serv struct {
	mtx sync.Mutex

	bet     model.BetState
	phase   *fsm.FSM
	reels   []Reel
	barrier *Barrier
	eval    *payline.Evaluator

	// Ставка и id текущего спина фиксируются на старте
	spinID  uuid.UUID
	spinBet int
	last    *model.SpinResult

	pub    event.Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService собирает сессию. Ошибки конфигурации возвращаются здесь, а не во время спина
func NewSessionService(
	bet model.BetState,
	reels []Reel,
	eval *payline.Evaluator,
	pub event.Publisher,
	logger *zap.Logger,
) (service.SessionService, error) {
	return newServ(bet, reels, eval, pub, logger)
}

func newServ(bet model.BetState, reels []Reel, eval *payline.Evaluator, pub event.Publisher, logger *zap.Logger) (*serv, error) {
	if err := bet.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, fmt.Errorf("%w: no payline evaluator", model.ErrConfiguration)
	}
	if len(reels) != eval.Reels() {
		return nil, fmt.Errorf("%w: %d reels for %d payline positions", model.ErrConfiguration, len(reels), eval.Reels())
	}
	for i, r := range reels {
		if got := len(r.Visible()); got != eval.Rows() {
			return nil, fmt.Errorf("%w: reel %d shows %d rows, want %d", model.ErrConfiguration, i, got, eval.Rows())
		}
	}
	if pub == nil {
		pub = event.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &serv{
		bet:     bet,
		phase:   newPhaseMachine(),
		reels:   reels,
		barrier: NewBarrier(len(reels)),
		eval:    eval,
		pub:     pub,
		logger:  logger.Named("session"),
		now:     time.Now,
	}, nil
}

func newPhaseMachine() *fsm.FSM {
	return fsm.NewFSM(
		string(model.PhaseIdle),
		fsm.Events{
			{Name: eventSpin, Src: []string{string(model.PhaseIdle)}, Dst: string(model.PhaseSpinning)},
			{Name: eventEvaluate, Src: []string{string(model.PhaseSpinning)}, Dst: string(model.PhaseEvaluating)},
			{Name: eventSettle, Src: []string{string(model.PhaseEvaluating)}, Dst: string(model.PhaseIdle)},
		},
		fsm.Callbacks{},
	)
}

func (s *serv) currentPhase() model.SessionPhase {
	return model.SessionPhase(s.phase.Current())
}

// publish вызывается без блокировки, чтобы получатели могли читать состояние
func (s *serv) publish(ctx context.Context, events []model.Event) {
	for _, e := range events {
		s.pub.Publish(ctx, e)
	}
}
