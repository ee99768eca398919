package session

import (
	"sync"

	"github.com/samber/lo"
)

// Barrier ждёт отчёта от каждого барабана и срабатывает один раз за спин.
// После каждого отчёта просматриваются все флаги, поэтому порядок остановки неважен
type Barrier struct {
	mtx   sync.Mutex
	done  []bool
	armed bool
}

func NewBarrier(n int) *Barrier {
	return &Barrier{done: make([]bool, n)}
}

// Arm сбрасывает флаги перед новым спином
func (b *Barrier) Arm() {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	clear(b.done)
	b.armed = true
}

// Report отмечает остановку барабана i. true возвращается только тому отчёту,
// после которого остановлены все. Повторные и лишние отчёты ничего не делают
func (b *Barrier) Report(i int) bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if !b.armed || i < 0 || i >= len(b.done) {
		return false
	}
	b.done[i] = true

	if !lo.EveryBy(b.done, func(d bool) bool { return d }) {
		return false
	}
	b.armed = false
	return true
}

// Pending барабаны, которые ещё не отчитались
func (b *Barrier) Pending() []int {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if !b.armed {
		return nil
	}
	pending := make([]int, 0, len(b.done))
	for i, d := range b.done {
		if !d {
			pending = append(pending, i)
		}
	}
	return pending
}

func (b *Barrier) Armed() bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.armed
}
