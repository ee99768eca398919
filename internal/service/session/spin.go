package session

import (
	"context"
	"slot_machine/internal/model"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSpin списывает ставку и запускает все барабаны.
// Если сессия занята или не хватает баланса, ничего не меняется
func (s *serv) StartSpin(ctx context.Context) {
	s.mtx.Lock()
	events := s.startSpin(ctx)
	s.mtx.Unlock()

	s.publish(ctx, events)
}

func (s *serv) startSpin(ctx context.Context) []model.Event {
	if phase := s.currentPhase(); phase != model.PhaseIdle {
		s.logger.Debug("spin rejected", zap.String("reason", "session busy"), zap.String("phase", string(phase)))
		return nil
	}
	if !s.bet.Affordable() {
		s.logger.Debug("spin rejected", zap.String("reason", "insufficient balance"),
			zap.Int("balance", s.bet.Balance), zap.Int("bet", s.bet.CurrentBet))
		return nil
	}
	if err := s.phase.Event(ctx, eventSpin); err != nil {
		s.logger.Error("failed to enter spinning phase", zap.Error(err))
		return nil
	}

	s.bet.Balance -= s.bet.CurrentBet
	s.spinBet = s.bet.CurrentBet
	s.spinID = uuid.New()

	s.barrier.Arm()
	for i, r := range s.reels {
		if !r.Start() {
			s.logger.Warn("reel was already spinning", zap.Int("reel", i))
		}
	}

	s.logger.Info("spin started",
		zap.Stringer("spin_id", s.spinID),
		zap.Int("bet", s.spinBet),
		zap.Int("balance", s.bet.Balance),
	)

	at := s.now()
	return []model.Event{
		{Kind: model.EventBalanceChanged, SpinID: s.spinID, At: at, Balance: s.bet.Balance},
		{Kind: model.EventSpinStarted, SpinID: s.spinID, At: at, Bet: s.spinBet},
	}
}

// Tick двигает все барабаны. Последний остановившийся запускает оценку
func (s *serv) Tick(ctx context.Context, dt time.Duration) {
	s.mtx.Lock()
	events := s.tick(ctx, dt)
	s.mtx.Unlock()

	s.publish(ctx, events)
}

func (s *serv) tick(ctx context.Context, dt time.Duration) []model.Event {
	if s.currentPhase() != model.PhaseSpinning {
		return nil
	}

	var events []model.Event
	for i, r := range s.reels {
		if !r.Tick(dt) {
			continue
		}
		visible := r.Visible()
		s.logger.Debug("reel stopped", zap.Int("reel", i), zap.Stringers("symbols", visible))
		events = append(events, model.Event{
			Kind:    model.EventReelStopped,
			SpinID:  s.spinID,
			At:      s.now(),
			Reel:    i,
			Symbols: visible,
		})

		if s.barrier.Report(i) {
			events = append(events, s.evaluate(ctx)...)
		}
	}
	return events
}

// evaluate выполняется ровно один раз за спин, когда все барабаны стоят
func (s *serv) evaluate(ctx context.Context) []model.Event {
	if err := s.phase.Event(ctx, eventEvaluate); err != nil {
		s.logger.Error("failed to enter evaluating phase", zap.Error(err))
		return nil
	}

	grid := s.buildGrid()
	win := s.eval.CalculateWin(grid, s.spinBet)
	if win.Total > 0 {
		s.bet.Balance += win.Total
	}

	result := model.SpinResult{
		ID:           s.spinID,
		Bet:          s.spinBet,
		Grid:         grid,
		Win:          win,
		BalanceAfter: s.bet.Balance,
		FinishedAt:   s.now(),
	}
	s.last = &result

	if err := s.phase.Event(ctx, eventSettle); err != nil {
		s.logger.Error("failed to return to idle phase", zap.Error(err))
	}

	s.logger.Info("spin evaluated",
		zap.Stringer("spin_id", result.ID),
		zap.Int("bet", result.Bet),
		zap.Int("win", win.Total),
		zap.Int("winning_lines", len(win.Lines)),
		zap.Int("balance", result.BalanceAfter),
	)

	events := []model.Event{{
		Kind:   model.EventSpinEvaluated,
		SpinID: result.ID,
		At:     result.FinishedAt,
		Result: &result,
	}}
	if win.Total > 0 {
		events = append(events, model.Event{
			Kind:    model.EventBalanceChanged,
			SpinID:  result.ID,
			At:      result.FinishedAt,
			Balance: result.BalanceAfter,
		})
	}
	return events
}

func (s *serv) buildGrid() model.Grid {
	grid := make(model.Grid, len(s.reels))
	for i, r := range s.reels {
		grid[i] = r.Visible()
	}
	return grid
}
