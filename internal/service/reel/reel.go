package reel

import (
	"fmt"
	"math"
	"slot_machine/internal/model"
	"time"
)

// Reel автомат одного барабана: задержка, разгон, крейсер, торможение, остановка.
// Не потокобезопасен, его двигает владелец сессии под своей блокировкой
type Reel struct {
	index int
	cfg   Config
	pool  []model.SymbolKind

	// outcome решает исход, cosmetic только крутит ленту
	outcome  Source
	cosmetic Source

	phase      model.ReelPhase
	startDelay time.Duration
	waited     time.Duration
	elapsed    time.Duration
	speed      float64
	scroll     float64

	result int
	drawn  bool
	strip  []model.SymbolKind
}

// New создаёт барабан с лентой, заполненной случайными символами
func New(index int, cfg Config, pool []model.SymbolKind, outcome, cosmetic Source) (*Reel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: reel %d has no symbols", model.ErrConfiguration, index)
	}
	if outcome == nil || cosmetic == nil {
		return nil, fmt.Errorf("%w: reel %d has no random source", model.ErrConfiguration, index)
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: negative reel index %d", model.ErrConfiguration, index)
	}

	r := &Reel{
		index:      index,
		cfg:        cfg,
		pool:       append([]model.SymbolKind(nil), pool...),
		outcome:    outcome,
		cosmetic:   cosmetic,
		startDelay: time.Duration(index) * cfg.CascadeStep,
		strip:      make([]model.SymbolKind, cfg.StripSize()),
	}
	for i := range r.strip {
		r.strip[i] = r.randomSymbol()
	}
	return r, nil
}

// Start тянет исход и запускает задержку. Повторный старт во время вращения игнорируется
func (r *Reel) Start() bool {
	if r.phase.Spinning() {
		return false
	}
	r.result = r.outcome.IntN(len(r.pool))
	r.drawn = true
	r.phase = model.ReelDelayed
	r.waited = 0
	r.elapsed = 0
	r.speed = 0
	r.scroll = 0
	return true
}

// Tick двигает автомат на dt. Возвращает true ровно на том тике, где барабан остановился
func (r *Reel) Tick(dt time.Duration) bool {
	if dt <= 0 || !r.phase.Spinning() {
		return false
	}

	if r.phase == model.ReelDelayed {
		r.waited += dt
		if r.waited < r.startDelay {
			return false
		}
		// остаток тика уходит в разгон
		dt = r.waited - r.startDelay
		r.phase = model.ReelAccelerating
		if dt == 0 {
			return false
		}
	}

	r.speed = r.speedAt(r.elapsed)
	r.move(r.speed * dt.Seconds())
	r.elapsed += dt

	if r.elapsed >= r.cfg.SpinDuration {
		r.stop()
		return true
	}
	r.phase = r.phaseAt(r.elapsed)
	return false
}

func (r *Reel) phaseAt(elapsed time.Duration) model.ReelPhase {
	p := r.progress(elapsed)
	switch {
	case p < accelerateShare:
		return model.ReelAccelerating
	case p < cruiseEnd:
		return model.ReelCruising
	default:
		return model.ReelDecelerating
	}
}

func (r *Reel) speedAt(elapsed time.Duration) float64 {
	p := r.progress(elapsed)
	switch {
	case p < accelerateShare:
		return lerp(r.cfg.MinSpeed, r.cfg.MaxSpeed, p/accelerateShare)
	case p < cruiseEnd:
		return r.cfg.MaxSpeed
	default:
		return lerp(r.cfg.MaxSpeed, 0, EaseOutBack((p-cruiseEnd)/decelerateShare))
	}
}

func (r *Reel) progress(elapsed time.Duration) float64 {
	return float64(elapsed) / float64(r.cfg.SpinDuration)
}

// move прокручивает ленту. Каждый пройденный символ уходит в конец с новым случайным значением
func (r *Reel) move(distance float64) {
	r.scroll += distance
	offset := math.Mod(r.scroll, r.cfg.SymbolHeight)
	if offset < distance {
		r.cycle()
	}
}

func (r *Reel) cycle() {
	copy(r.strip, r.strip[1:])
	r.strip[len(r.strip)-1] = r.randomSymbol()
}

// stop перезаписывает всю ленту от вытянутого исхода. Прокрутка после этого не влияет на поле
func (r *Reel) stop() {
	r.phase = model.ReelStopped
	r.speed = 0
	r.scroll = 0
	copy(r.strip, Window(r.pool, r.result, r.cfg.Middle(), len(r.strip)))
}

func (r *Reel) randomSymbol() model.SymbolKind {
	return r.pool[r.cosmetic.IntN(len(r.pool))]
}

// Window лента длины size вокруг исхода: позиция middle получает pool[outcome],
// соседи сдвинуты на расстояние от середины по модулю длины пула
func Window(pool []model.SymbolKind, outcome, middle, size int) []model.SymbolKind {
	n := len(pool)
	out := make([]model.SymbolKind, size)
	for i := range out {
		out[i] = pool[((outcome+i-middle)%n+n)%n]
	}
	return out
}

func (r *Reel) Index() int { return r.index }

func (r *Reel) Phase() model.ReelPhase { return r.phase }

func (r *Reel) Stopped() bool { return r.phase == model.ReelStopped }

func (r *Reel) StartDelay() time.Duration { return r.startDelay }

func (r *Reel) Speed() float64 { return r.speed }

// Visible видимые ряды сверху вниз
func (r *Reel) Visible() []model.SymbolKind {
	return append([]model.SymbolKind(nil), r.strip[:r.cfg.VisibleRows]...)
}

// Strip вся лента, включая запас
func (r *Reel) Strip() []model.SymbolKind {
	return append([]model.SymbolKind(nil), r.strip...)
}

func (r *Reel) State() model.ReelState {
	st := model.ReelState{
		Index:      r.index,
		Phase:      r.phase,
		Elapsed:    r.elapsed,
		StartDelay: r.startDelay,
		Speed:      r.speed,
		Drawn:      r.drawn,
	}
	if r.drawn {
		st.Outcome = r.pool[r.result]
	}
	return st
}
