package session

import (
	"context"
	"slot_machine/internal/model"

	"go.uber.org/zap"
)

// ChangeBet сдвигает ставку на delta в пределах [MinBet, MaxBet].
// Идущий спин уже зафиксировал свою ставку и не затрагивается
func (s *serv) ChangeBet(ctx context.Context, delta int) {
	s.mtx.Lock()
	prev := s.bet.CurrentBet
	s.bet.CurrentBet = s.bet.Shift(delta)
	e := model.Event{Kind: model.EventBetChanged, SpinID: s.spinID, At: s.now(), Bet: s.bet.CurrentBet}
	s.mtx.Unlock()

	if prev != e.Bet {
		s.logger.Debug("bet changed", zap.Int("from", prev), zap.Int("to", e.Bet))
	}
	s.publish(ctx, []model.Event{e})
}
