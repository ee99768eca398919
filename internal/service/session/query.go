package session

import (
	"slot_machine/internal/model"
)

// GetSymbolGrid видимые символы всех барабанов прямо сейчас
func (s *serv) GetSymbolGrid() model.Grid {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.buildGrid()
}

func (s *serv) State() model.SessionState {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	reels := make([]model.ReelState, len(s.reels))
	for i, r := range s.reels {
		reels[i] = r.State()
	}
	return model.SessionState{
		Phase:        s.currentPhase(),
		Bet:          s.bet,
		SpinID:       s.spinID,
		PendingReels: s.barrier.Pending(),
		Reels:        reels,
	}
}

func (s *serv) LastResult() (model.SpinResult, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.last == nil {
		return model.SpinResult{}, false
	}
	res := *s.last
	res.Grid = res.Grid.Clone()
	return res, true
}

// Paylines линии, по которым оценивается поле, для подсветки в интерфейсе
func (s *serv) Paylines() []model.Payline {
	return s.eval.Lines()
}
