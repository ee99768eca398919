package payline

import (
	"slot_machine/internal/model"
	servModel "slot_machine/internal/service/payline/model"
)

// Payout множитель для символа и длины совпадения. Промах таблицы даёт 0
func Payout(kind model.SymbolKind, count int) int {
	counts, ok := servModel.PayoutTable[kind]
	if !ok {
		return 0
	}
	return counts[count]
}

// DefaultPaylines копия стандартных 16 линий
func DefaultPaylines() []model.Payline {
	lines := make([]model.Payline, len(servModel.PlayLines))
	for i, l := range servModel.PlayLines {
		lines[i] = append(model.Payline(nil), l[:]...)
	}
	return lines
}
