package spin_repo

import (
	"context"
	"slot_machine/internal/model"
	"slot_machine/internal/repository"
	"sync"
)

// memoryRepo журнал в памяти, когда Postgres не настроен. Хранит последние capacity спинов
type memoryRepo struct {
	mtx      sync.RWMutex
	capacity int
	spins    []model.SpinResult
}

func NewMemoryRepository(capacity int) repository.SpinRepository {
	if capacity <= 0 {
		capacity = maxListLimit
	}
	return &memoryRepo{capacity: capacity}
}

func (r *memoryRepo) Save(_ context.Context, spin model.SpinResult) error {
	spin.Grid = spin.Grid.Clone()
	spin.Win.Lines = append([]model.LineWin(nil), spin.Win.Lines...)

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.spins = append(r.spins, spin)
	if len(r.spins) > r.capacity {
		r.spins = r.spins[len(r.spins)-r.capacity:]
	}
	return nil
}

func (r *memoryRepo) List(_ context.Context, limit int) ([]model.SpinResult, error) {
	limit = normalizeLimit(limit)

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	n := min(limit, len(r.spins))
	out := make([]model.SpinResult, 0, n)
	for i := len(r.spins) - 1; i >= len(r.spins)-n; i-- {
		out = append(out, r.spins[i])
	}
	return out, nil
}
