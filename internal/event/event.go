package event

import (
	"context"
	"slot_machine/internal/model"
	"sync"
)

// Publisher получатель исходящих событий сессии.
// Ошибки своей инфраструктуры получатель обрабатывает сам
type Publisher interface {
	Publish(ctx context.Context, e model.Event)
}

// PublisherFunc адаптер для функций
type PublisherFunc func(ctx context.Context, e model.Event)

func (f PublisherFunc) Publish(ctx context.Context, e model.Event) {
	f(ctx, e)
}

// Bus раздаёт событие всем получателям по порядку
type Bus struct {
	mtx   sync.RWMutex
	sinks []Publisher
}

func NewBus(sinks ...Publisher) *Bus {
	return &Bus{sinks: sinks}
}

// Subscribe добавляет получателя
func (b *Bus) Subscribe(p Publisher) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.sinks = append(b.sinks, p)
}

func (b *Bus) Publish(ctx context.Context, e model.Event) {
	b.mtx.RLock()
	sinks := b.sinks
	b.mtx.RUnlock()

	for _, s := range sinks {
		s.Publish(ctx, e)
	}
}

// Discard ничего не делает
var Discard Publisher = PublisherFunc(func(context.Context, model.Event) {})
