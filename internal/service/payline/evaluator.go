package payline

import (
	"fmt"
	"slot_machine/internal/model"
	servModel "slot_machine/internal/service/payline/model"

	"github.com/samber/lo"
)

// Evaluator считает выигрыш по фиксированному набору линий
type Evaluator struct {
	lines []model.Payline
	reels int
	rows  int
}

// NewEvaluator проверяет, что каждая линия покрывает все барабаны и не выходит за ряды
func NewEvaluator(lines []model.Payline, reels, rows int) (*Evaluator, error) {
	if reels <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: invalid grid %dx%d", model.ErrConfiguration, reels, rows)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no paylines", model.ErrConfiguration)
	}

	own := make([]model.Payline, len(lines))
	for i, line := range lines {
		if len(line) != reels {
			return nil, fmt.Errorf("%w: payline %d has %d positions, want %d", model.ErrConfiguration, i, len(line), reels)
		}
		if _, bad := lo.Find(line, func(row int) bool { return row < 0 || row >= rows }); bad {
			return nil, fmt.Errorf("%w: payline %d leaves rows [0, %d)", model.ErrConfiguration, i, rows)
		}
		own[i] = append(model.Payline(nil), line...)
	}

	return &Evaluator{lines: own, reels: reels, rows: rows}, nil
}

func (e *Evaluator) Reels() int { return e.reels }

func (e *Evaluator) Rows() int { return e.rows }

func (e *Evaluator) Lines() []model.Payline {
	return lo.Map(e.lines, func(l model.Payline, _ int) model.Payline {
		return append(model.Payline(nil), l...)
	})
}

// CalculateWin оценивает каждую линию независимо и суммирует выплаты.
// betPerLine это вся ставка, на число линий она не делится
func (e *Evaluator) CalculateWin(board model.Board, betPerLine int) model.WinResult {
	var res model.WinResult
	for i, line := range e.lines {
		win, ok := e.evaluateLine(board, line, betPerLine)
		if !ok {
			continue
		}
		win.Index = i
		res.Total += win.Payout
		res.Lines = append(res.Lines, win)
	}
	return res
}

// evaluateLine идёт слева направо. Первое несовпадение снимает линию целиком,
// следующие барабаны не читаются.
// Ведущий Wild переякоривается на первый другой символ и сбрасывает счётчик в 1
func (e *Evaluator) evaluateLine(board model.Board, line model.Payline, betPerLine int) (model.LineWin, bool) {
	anchor := board.At(0, line[0])
	count := 1

	for reel := 1; reel < len(line); reel++ {
		current := board.At(reel, line[reel])
		switch {
		case current == anchor || current == model.Wild:
			count++
		case anchor == model.Wild:
			anchor = current
			count = 1
		default:
			return model.LineWin{}, false
		}
	}

	if count < servModel.MinMatch {
		return model.LineWin{}, false
	}

	return model.LineWin{
		Symbol: anchor,
		Count:  count,
		Payout: Payout(anchor, count) * betPerLine,
		Cells: lo.Map(line, func(row int, reel int) model.Cell {
			return model.Cell{Reel: reel, Row: row}
		}),
	}, true
}
