package reel

import "math/rand/v2"

// Source источник случайных индексов. *rand.Rand подходит как есть
type Source interface {
	IntN(n int) int
}

// NewSource детерминированный источник для сида. Нулевой сид берёт случайный
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
