package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"slot_machine/internal/model"
	"slot_machine/internal/service/reel"
)

type tickCounter struct {
	ticks atomic.Int32
	total atomic.Int64
}

func (c *tickCounter) StartSpin(context.Context)      {}
func (c *tickCounter) ChangeBet(context.Context, int) {}
func (c *tickCounter) Tick(_ context.Context, dt time.Duration) {
	c.ticks.Add(1)
	c.total.Add(int64(dt))
}
func (c *tickCounter) GetSymbolGrid() model.Grid            { return nil }
func (c *tickCounter) State() model.SessionState            { return model.SessionState{} }
func (c *tickCounter) LastResult() (model.SpinResult, bool) { return model.SpinResult{}, false }
func (c *tickCounter) Paylines() []model.Payline            { return nil }

func TestDriverTicksUntilCancelled(t *testing.T) {
	svc := &tickCounter{}
	d := NewDriver(svc, 200, nil)
	if d.Interval() != 5*time.Millisecond {
		t.Fatalf("interval %v", d.Interval())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("driver did not stop")
	}

	if svc.ticks.Load() == 0 {
		t.Fatal("driver never ticked")
	}
	if svc.total.Load() <= 0 {
		t.Fatal("driver passed no time")
	}
}

func TestDriverDefaultRate(t *testing.T) {
	if d := NewDriver(&tickCounter{}, 0, nil); d.Interval() != time.Second/60 {
		t.Fatalf("default interval %v", d.Interval())
	}
}

func TestDriverCapsLongSteps(t *testing.T) {
	d := NewDriver(&tickCounter{}, 100, nil)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"regular", 10 * time.Millisecond, 10 * time.Millisecond},
		{"late", 25 * time.Millisecond, 25 * time.Millisecond},
		{"at limit", 40 * time.Millisecond, 40 * time.Millisecond},
		{"stalled sink", 3 * time.Second, 40 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.step(tt.elapsed); got != tt.want {
				t.Fatalf("step(%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}

// Задержка получателей не должна схлопывать спин: после паузы барабаны
// всё ещё проходят торможение, а не останавливаются за один тик
func TestCappedStepKeepsReelTimeline(t *testing.T) {
	d := NewDriver(&tickCounter{}, 60, nil)
	r, err := reel.New(0, reel.DefaultConfig(), model.AllSymbols, reel.NewSource(3), reel.NewSource(4))
	if err != nil {
		t.Fatal(err)
	}
	r.Start()

	if r.Tick(d.step(3 * time.Second)) {
		t.Fatal("reel stopped on the first tick after a stall")
	}
	if !r.Phase().Spinning() {
		t.Fatalf("reel phase %v after capped step", r.Phase())
	}
}
