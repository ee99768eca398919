package converter

import (
	"slot_machine/internal/api/dto/session"
	"slot_machine/internal/model"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

func ToStateResponse(st model.SessionState) session.StateResponse {
	return session.StateResponse{
		Phase:          string(st.Phase),
		Balance:        st.Bet.Balance,
		CurrentBet:     st.Bet.CurrentBet,
		MinBet:         st.Bet.MinBet,
		MaxBet:         st.Bet.MaxBet,
		BetStep:        st.Bet.Step,
		CanSpin:        st.CanSpin(),
		CanIncreaseBet: st.Bet.CanIncrease(),
		CanDecreaseBet: st.Bet.CanDecrease(),
		SpinID:         spinID(st.SpinID),
		PendingReels:   st.PendingReels,
		Reels:          lo.Map(st.Reels, func(r model.ReelState, _ int) session.ReelState { return toReelState(r) }),
	}
}

func toReelState(r model.ReelState) session.ReelState {
	return session.ReelState{
		Index:      r.Index,
		Phase:      r.Phase.String(),
		Elapsed:    r.Elapsed.Seconds(),
		StartDelay: r.StartDelay.Seconds(),
		Speed:      r.Speed,
	}
}

func ToGridResponse(g model.Grid) session.GridResponse {
	return session.GridResponse{Grid: toGrid(g)}
}

func ToPaylinesResponse(lines []model.Payline) session.PaylinesResponse {
	return session.PaylinesResponse{
		Lines: lo.Map(lines, func(l model.Payline, i int) session.Payline {
			return session.Payline{Line: i + 1, Rows: append([]int(nil), l...)}
		}),
	}
}

func ToSpinResponse(res model.SpinResult) session.SpinResponse {
	return session.SpinResponse{
		SpinID:     res.ID.String(),
		Bet:        res.Bet,
		TotalWin:   res.Win.Total,
		Balance:    res.BalanceAfter,
		Grid:       toGrid(res.Grid),
		LineWins:   toLineWins(res.Win.Lines),
		FinishedAt: res.FinishedAt,
	}
}

func ToSpinResponses(spins []model.SpinResult) []session.SpinResponse {
	return lo.Map(spins, func(s model.SpinResult, _ int) session.SpinResponse { return ToSpinResponse(s) })
}

func ToStatsResponse(st model.RTPStats) session.StatsResponse {
	return session.StatsResponse{
		TotalSpins:  st.TotalSpins,
		TotalBet:    st.TotalBet.String(),
		TotalPayout: st.TotalPayout.String(),
		CurrentRTP:  st.CurrentRTP.StringFixed(2),
		TargetRTP:   st.TargetRTP.StringFixed(2),
		WindowRTP:   st.WindowRTP.StringFixed(2),
		WindowSize:  st.WindowSize,
		WindowLen:   st.WindowLen,
		Deviating:   st.Deviating,
		Direction:   st.Direction,
	}
}

// ToEventMessage заполняет только поля, относящиеся к виду события
func ToEventMessage(e model.Event) session.EventMessage {
	msg := session.EventMessage{
		Type:   string(e.Kind),
		SpinID: spinID(e.SpinID),
		At:     e.At,
	}
	switch e.Kind {
	case model.EventBalanceChanged:
		msg.Balance = lo.ToPtr(e.Balance)
	case model.EventBetChanged, model.EventSpinStarted:
		msg.Bet = lo.ToPtr(e.Bet)
	case model.EventReelStopped:
		msg.Reel = lo.ToPtr(e.Reel)
		msg.Symbols = toNames(e.Symbols)
	case model.EventSpinEvaluated:
		if e.Result != nil {
			msg.Result = lo.ToPtr(ToSpinResponse(*e.Result))
		}
	}
	return msg
}

func toLineWins(lineWins []model.LineWin) []session.LineWin {
	result := make([]session.LineWin, len(lineWins))
	for i, l := range lineWins {
		result[i] = session.LineWin{
			Line:   l.Index + 1,
			Symbol: l.Symbol.String(),
			Count:  l.Count,
			Payout: l.Payout,
			Cells: lo.Map(l.Cells, func(c model.Cell, _ int) session.Cell {
				return session.Cell{Reel: c.Reel, Row: c.Row}
			}),
		}
	}
	return result
}

func toGrid(g model.Grid) [][]string {
	return lo.Map(g, func(col []model.SymbolKind, _ int) []string { return toNames(col) })
}

func toNames(symbols []model.SymbolKind) []string {
	return lo.Map(symbols, func(s model.SymbolKind, _ int) string { return s.String() })
}

func spinID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
