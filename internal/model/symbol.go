package model

import "fmt"

// SymbolKind вид символа на барабане
type SymbolKind int

const (
	Num1 SymbolKind = iota
	Num2
	Num3
	Num4
	Num5
	J
	Q
	K
	Scatter
	Wild
)

// AllSymbols полный пул символов, из которого крутятся барабаны
var AllSymbols = []SymbolKind{Num1, Num2, Num3, Num4, Num5, J, Q, K, Scatter, Wild}

var symbolNames = [...]string{"Num1", "Num2", "Num3", "Num4", "Num5", "J", "Q", "K", "Scatter", "Wild"}

// Базовая стоимость символа. Только для отображения, в выплатах не участвует
var baseValues = [...]int{50, 25, 25, 20, 20, 10, 10, 10, 100, 200}

func (s SymbolKind) Valid() bool {
	return s >= Num1 && s <= Wild
}

func (s SymbolKind) String() string {
	if !s.Valid() {
		return fmt.Sprintf("SymbolKind(%d)", int(s))
	}
	return symbolNames[s]
}

// BaseValue информационная стоимость символа
func (s SymbolKind) BaseValue() int {
	if !s.Valid() {
		return 0
	}
	return baseValues[s]
}

// ParseSymbolKind обратное преобразование из имени
func ParseSymbolKind(name string) (SymbolKind, bool) {
	for i, n := range symbolNames {
		if n == name {
			return SymbolKind(i), true
		}
	}
	return 0, false
}
