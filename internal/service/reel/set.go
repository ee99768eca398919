package reel

import (
	"math/rand/v2"
	"slot_machine/internal/model"
)

const seedMix = 0x9e3779b97f4a7c15

// NewSet создаёт count барабанов. У каждого барабана свои источники исхода и прокрутки,
// выведенные из общего сида; при нулевом сиде общий сид берётся случайно
func NewSet(count int, cfg Config, pool []model.SymbolKind, seed uint64) ([]*Reel, error) {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}

	reels := make([]*Reel, 0, count)
	for i := range count {
		outcome := NewSource(seed + uint64(2*i+1)*seedMix)
		cosmetic := NewSource(seed + uint64(2*i+2)*seedMix)
		r, err := New(i, cfg, pool, outcome, cosmetic)
		if err != nil {
			return nil, err
		}
		reels = append(reels, r)
	}
	return reels, nil
}
