package model

// Cell координата клетки поля
type Cell struct {
	Reel int
	Row  int
}

// Board поле только для чтения. Оценщик линий читает символы только через него
type Board interface {
	Reels() int
	Rows() int
	At(reel, row int) SymbolKind
}

// Grid итоговое поле спина, адресация [барабан][ряд]
type Grid [][]SymbolKind

func NewGrid(reels, rows int) Grid {
	g := make(Grid, reels)
	for r := range g {
		g[r] = make([]SymbolKind, rows)
	}
	return g
}

func (g Grid) Reels() int {
	return len(g)
}

func (g Grid) Rows() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) At(reel, row int) SymbolKind {
	return g[reel][row]
}

func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	c := make(Grid, len(g))
	for r := range g {
		c[r] = append([]SymbolKind(nil), g[r]...)
	}
	return c
}
