package session

import (
	"fmt"
	"slot_machine/internal/model"
	"slot_machine/internal/service/payline"
	"slot_machine/internal/service/reel"

	"github.com/shopspring/decimal"
)

// ExpectedRTP точный RTP в процентах. Каждый барабан даёт одно из len(pool)
// окон, поэтому все исходы перебираются напрямую
func ExpectedRTP(eval *payline.Evaluator, pool []model.SymbolKind) (decimal.Decimal, error) {
	n := len(pool)
	if n == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty symbol pool", model.ErrConfiguration)
	}
	reels, rows := eval.Reels(), eval.Rows()

	windows := make([][]model.SymbolKind, n)
	for i := range windows {
		windows[i] = reel.Window(pool, i, rows/2, rows)
	}

	const bet = 1
	grid := make(model.Grid, reels)
	outcome := make([]int, reels)
	var total, combos int64
	for {
		for r := range grid {
			grid[r] = windows[outcome[r]]
		}
		total += int64(eval.CalculateWin(grid, bet).Total)
		combos++

		// следующий набор исходов, как счётчик по основанию n
		r := 0
		for ; r < reels; r++ {
			outcome[r]++
			if outcome[r] < n {
				break
			}
			outcome[r] = 0
		}
		if r == reels {
			break
		}
	}

	return decimal.NewFromInt(total).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(combos * bet)), nil
}
