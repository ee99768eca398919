package reel

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"slot_machine/internal/config/env"
	"slot_machine/internal/model"
)

// fixedSource всегда отдаёт один и тот же индекс
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

// countingSource считает вызовы и перебирает индексы по кругу
type countingSource struct {
	calls int
}

func (s *countingSource) IntN(n int) int {
	s.calls++
	return s.calls % n
}

const frame = 10 * time.Millisecond

func newTestReel(t *testing.T, index int, outcome Source, cosmetic Source) *Reel {
	t.Helper()
	r, err := New(index, DefaultConfig(), model.AllSymbols, outcome, cosmetic)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

// run двигает барабан кадрами, пока не пройдёт total, и считает остановки
func run(r *Reel, total time.Duration) int {
	stops := 0
	for passed := time.Duration(0); passed < total; passed += frame {
		if r.Tick(frame) {
			stops++
		}
	}
	return stops
}

func TestNewRejectsEmptyPool(t *testing.T) {
	_, err := New(0, DefaultConfig(), nil, fixedSource(0), fixedSource(0))
	if !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpinDuration = 0
	if _, err := New(0, cfg, model.AllSymbols, fixedSource(0), fixedSource(0)); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.MaxSpeed = cfg.MinSpeed - 1
	if _, err := New(0, cfg, model.AllSymbols, fixedSource(0), fixedSource(0)); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewFillsStrip(t *testing.T) {
	r := newTestReel(t, 0, fixedSource(0), fixedSource(3))
	if got := len(r.Strip()); got != 7 {
		t.Fatalf("strip size %d, want 7", got)
	}
	if got := len(r.Visible()); got != 3 {
		t.Fatalf("visible rows %d, want 3", got)
	}
	if r.Phase() != model.ReelIdle {
		t.Fatalf("new reel in phase %s", r.Phase())
	}
}

func TestStartDelayCascades(t *testing.T) {
	for i := 0; i < 5; i++ {
		r := newTestReel(t, i, fixedSource(0), fixedSource(0))
		if want := time.Duration(i) * 150 * time.Millisecond; r.StartDelay() != want {
			t.Errorf("reel %d delay %v, want %v", i, r.StartDelay(), want)
		}
	}
}

func TestTickIgnoredWhenIdle(t *testing.T) {
	r := newTestReel(t, 0, fixedSource(0), fixedSource(0))
	before := r.Strip()
	if r.Tick(time.Second) {
		t.Fatal("idle reel reported a stop")
	}
	if r.Phase() != model.ReelIdle || !slices.Equal(before, r.Strip()) {
		t.Fatal("idle reel changed on tick")
	}
}

func TestPhaseTimeline(t *testing.T) {
	r := newTestReel(t, 2, fixedSource(0), &countingSource{})
	r.Start()

	checkpoints := []struct {
		until time.Duration
		want  model.ReelPhase
	}{
		{200 * time.Millisecond, model.ReelDelayed},
		{300*time.Millisecond + 100*time.Millisecond, model.ReelAccelerating},
		{300*time.Millisecond + time.Second, model.ReelCruising},
		{300*time.Millisecond + 1500*time.Millisecond, model.ReelDecelerating},
	}

	var passed time.Duration
	for _, cp := range checkpoints {
		for passed < cp.until {
			if r.Tick(frame) {
				t.Fatalf("reel stopped early at %v", passed)
			}
			passed += frame
		}
		if r.Phase() != cp.want {
			t.Fatalf("at %v phase %s, want %s", passed, r.Phase(), cp.want)
		}
	}

	stops := 0
	for passed < 300*time.Millisecond+2*time.Second {
		if r.Tick(frame) {
			stops++
		}
		passed += frame
	}
	if stops != 1 || !r.Stopped() {
		t.Fatalf("expected exactly one stop at the end, got %d (phase %s)", stops, r.Phase())
	}
}

func TestSpeedProfile(t *testing.T) {
	cfg := DefaultConfig()
	r := newTestReel(t, 0, fixedSource(0), &countingSource{})
	r.Start()

	r.Tick(frame)
	if r.Speed() != cfg.MinSpeed {
		t.Fatalf("first moving frame speed %v, want %v", r.Speed(), cfg.MinSpeed)
	}

	run(r, time.Second)
	if r.Speed() != cfg.MaxSpeed {
		t.Fatalf("cruise speed %v, want %v", r.Speed(), cfg.MaxSpeed)
	}

	// торможение не уходит в минус на перелёте кривой
	for !r.Stopped() {
		r.Tick(frame)
		if r.Speed() < 0 || r.Speed() > cfg.MaxSpeed {
			t.Fatalf("speed %v outside [0, %v]", r.Speed(), cfg.MaxSpeed)
		}
	}
	if r.Speed() != 0 {
		t.Fatalf("stopped reel speed %v", r.Speed())
	}
}

func TestEaseOutBack(t *testing.T) {
	if v := EaseOutBack(0); math.Abs(v) > 1e-9 {
		t.Errorf("EaseOutBack(0) = %v", v)
	}
	if v := EaseOutBack(1); v != 1 {
		t.Errorf("EaseOutBack(1) = %v", v)
	}
	if v := EaseOutBack(0.5); v <= 1 {
		t.Errorf("EaseOutBack(0.5) = %v, expected overshoot", v)
	}
}

func TestFinalSymbols(t *testing.T) {
	tests := []struct {
		name    string
		outcome int
		visible []model.SymbolKind
	}{
		{"middle of pool", 4, []model.SymbolKind{model.Num4, model.Num5, model.J}},
		{"wrap below zero", 0, []model.SymbolKind{model.Wild, model.Num1, model.Num2}},
		{"wrap past end", 9, []model.SymbolKind{model.Scatter, model.Wild, model.Num1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReel(t, 0, fixedSource(tt.outcome), &countingSource{})
			r.Start()
			if stops := run(r, 3*time.Second); stops != 1 {
				t.Fatalf("stops = %d", stops)
			}
			if got := r.Visible(); !slices.Equal(got, tt.visible) {
				t.Fatalf("visible %v, want %v", got, tt.visible)
			}
			if st := r.State(); !st.Drawn || st.Outcome != tt.visible[1] {
				t.Fatalf("state outcome %v, want %v", st.Outcome, tt.visible[1])
			}
		})
	}
}

func TestFullStripRewrittenOnStop(t *testing.T) {
	r := newTestReel(t, 0, fixedSource(4), &countingSource{})
	r.Start()
	run(r, 3*time.Second)
	want := []model.SymbolKind{model.Num4, model.Num5, model.J, model.Q, model.K, model.Scatter, model.Wild}
	if got := r.Strip(); !slices.Equal(got, want) {
		t.Fatalf("strip %v, want %v", got, want)
	}
}

func TestCosmeticCyclingDoesNotLeak(t *testing.T) {
	cosmetic := &countingSource{}
	r := newTestReel(t, 1, fixedSource(6), cosmetic)
	filled := cosmetic.calls

	r.Start()
	run(r, 3*time.Second)
	if cosmetic.calls == filled {
		t.Fatal("reel never cycled symbols while spinning")
	}

	visible := r.Visible()
	calls := cosmetic.calls
	for i := 0; i < 100; i++ {
		if r.Tick(frame) {
			t.Fatal("stopped reel reported another stop")
		}
	}
	if cosmetic.calls != calls {
		t.Fatal("stopped reel kept cycling")
	}
	if !slices.Equal(r.Visible(), visible) {
		t.Fatal("visible symbols changed after stop")
	}
}

func TestOutcomeIndependentOfCosmeticSource(t *testing.T) {
	a := newTestReel(t, 0, fixedSource(7), NewSource(1))
	b := newTestReel(t, 0, fixedSource(7), NewSource(2))
	a.Start()
	b.Start()
	run(a, 3*time.Second)
	run(b, 3*time.Second)
	if !slices.Equal(a.Visible(), b.Visible()) {
		t.Fatalf("outcome depends on cosmetic source: %v vs %v", a.Visible(), b.Visible())
	}
}

type recordingSource struct {
	calls int
}

func (s *recordingSource) IntN(n int) int {
	s.calls++
	return 0
}

func TestStartWhileSpinningIgnored(t *testing.T) {
	outcome := &recordingSource{}
	r := newTestReel(t, 0, outcome, &countingSource{})
	if !r.Start() {
		t.Fatal("first start rejected")
	}
	r.Tick(frame)
	if r.Start() {
		t.Fatal("second start accepted while spinning")
	}
	if outcome.calls != 1 {
		t.Fatalf("outcome drawn %d times", outcome.calls)
	}

	run(r, 3*time.Second)
	if !r.Start() {
		t.Fatal("restart after stop rejected")
	}
	if outcome.calls != 2 {
		t.Fatalf("outcome drawn %d times after restart", outcome.calls)
	}
}

func TestWindow(t *testing.T) {
	pool := []model.SymbolKind{model.J, model.Q, model.K}
	got := Window(pool, 0, 1, 5)
	want := []model.SymbolKind{model.K, model.J, model.Q, model.K, model.J}
	if !slices.Equal(got, want) {
		t.Fatalf("Window = %v, want %v", got, want)
	}
}

func TestNewSetIsReproducible(t *testing.T) {
	draw := func() []model.SymbolKind {
		reels, err := NewSet(5, DefaultConfig(), model.AllSymbols, 7)
		if err != nil {
			t.Fatal(err)
		}
		out := make([]model.SymbolKind, 0, len(reels))
		for _, r := range reels {
			if !r.Start() {
				t.Fatal("reel did not start")
			}
			out = append(out, r.State().Outcome)
		}
		return out
	}

	first, second := draw(), draw()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("reel %d drew %v then %v with the same seed", i, first[i], second[i])
		}
	}
}

func TestNewSetIndexes(t *testing.T) {
	reels, err := NewSet(3, DefaultConfig(), model.AllSymbols, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range reels {
		if r.Index() != i || r.StartDelay() != time.Duration(i)*DefaultConfig().CascadeStep {
			t.Fatalf("reel %d: index %d delay %v", i, r.Index(), r.StartDelay())
		}
	}

	if _, err = NewSet(2, DefaultConfig(), nil, 1); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestConfigFromEngineDefaults(t *testing.T) {
	engine, err := env.NewEngineConfigFromYAML(t.TempDir() + "/absent.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if got := ConfigFrom(engine); got != DefaultConfig() {
		t.Fatalf("ConfigFrom(defaults) = %+v, want %+v", got, DefaultConfig())
	}
}
