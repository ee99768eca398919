package model

// Payline номер ряда для каждого барабана
type Payline []int

// LineWin выигрыш по одной линии
type LineWin struct {
	Index  int        // Номер линии, с нуля
	Symbol SymbolKind // Символ, по которому считалась выплата
	Count  int        // Длина совпадения (3-5)
	Payout int        // Выплата
	Cells  []Cell     // Клетки линии для подсветки
}

// WinResult результат оценки поля
type WinResult struct {
	Total int
	Lines []LineWin
}
