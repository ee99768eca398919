package stats_repo

import (
	"slot_machine/internal/model"
	repoModel "slot_machine/internal/repository/stats_repo/model"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// periodSpinsToCheck Периодичность проверки окна (каждые N спинов)
	periodSpinsToCheck = 25
	// criticalRTPDeviation отклонение RTP окна от цели в п.п., при котором поднимается флаг
	criticalRTPDeviation = 10
	// normalRTPDeviation отклонение, при котором флаг снимается
	normalRTPDeviation = 5
	// defaultWindowSize размер окна по умолчанию
	defaultWindowSize = 500
)

var hundred = decimal.NewFromInt(100)

// StateRepo статистика RTP сессии в памяти
type StateRepo struct {
	mtx    sync.RWMutex
	state  repoModel.SessionStats
	logger *zap.Logger
}

// NewStatsRepository targetRTP в процентах, обычно результат session.ExpectedRTP
func NewStatsRepository(targetRTP decimal.Decimal, windowSize int, logger *zap.Logger) *StateRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateRepo{
		state: repoModel.SessionStats{
			TargetRTP:  targetRTP,
			SpinWindow: make([]repoModel.SpinEntry, 0, windowSize),
			WindowSize: windowSize,
		},
		logger: logger.Named("stats"),
	}
}

// UpdateState Обновление статистики после спина
func (r *StateRepo) UpdateState(bet, payout int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	b, p := decimal.NewFromInt(int64(bet)), decimal.NewFromInt(int64(payout))

	r.state.TotalSpins++
	r.state.TotalBet = r.state.TotalBet.Add(b)
	r.state.TotalPayout = r.state.TotalPayout.Add(p)
	r.state.CurrentRTP = rtp(r.state.TotalPayout, r.state.TotalBet)

	// Добавляем спин в окно, суммы окна ведём инкрементально
	r.state.SpinWindow = append(r.state.SpinWindow, repoModel.SpinEntry{Bet: b, Payout: p})
	r.state.WindowBet = r.state.WindowBet.Add(b)
	r.state.WindowPay = r.state.WindowPay.Add(p)

	// Поддерживаем размер окна
	if len(r.state.SpinWindow) > r.state.WindowSize {
		old := r.state.SpinWindow[0]
		r.state.SpinWindow = r.state.SpinWindow[1:]
		r.state.WindowBet = r.state.WindowBet.Sub(old.Bet)
		r.state.WindowPay = r.state.WindowPay.Sub(old.Payout)
	}
	r.state.WindowRTP = rtp(r.state.WindowPay, r.state.WindowBet)
}

// Stats копия текущей статистики
func (r *StateRepo) Stats() model.RTPStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return model.RTPStats{
		TotalSpins:  r.state.TotalSpins,
		TotalBet:    r.state.TotalBet,
		TotalPayout: r.state.TotalPayout,
		CurrentRTP:  r.state.CurrentRTP,
		TargetRTP:   r.state.TargetRTP,
		WindowRTP:   r.state.WindowRTP,
		WindowSize:  r.state.WindowSize,
		WindowLen:   len(r.state.SpinWindow),
		Deviating:   r.state.Deviating,
		Direction:   r.state.Direction,
	}
}

// DeviationCheck раз в periodSpinsToCheck спинов сравнивает RTP окна с целью.
// Возвращает true, если флаг отклонения только что поднялся
func (r *StateRepo) DeviationCheck() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.state.TotalSpins == 0 || r.state.TotalSpins%periodSpinsToCheck != 0 {
		return false
	}

	diff := r.state.WindowRTP.Sub(r.state.TargetRTP)
	absDiff := diff.Abs()

	if absDiff.GreaterThan(decimal.NewFromInt(criticalRTPDeviation)) {
		raised := !r.state.Deviating
		r.state.Deviating = true
		if diff.IsPositive() {
			r.state.Direction = "high"
		} else {
			r.state.Direction = "low"
		}
		if raised {
			r.logger.Warn("window RTP deviates from target",
				zap.String("window_rtp", r.state.WindowRTP.StringFixed(2)),
				zap.String("target_rtp", r.state.TargetRTP.StringFixed(2)),
				zap.String("direction", r.state.Direction),
				zap.Int("spins", r.state.TotalSpins),
			)
		}
		return raised
	}

	// Выходим из режима отклонения, когда окно вернулось ближе к цели
	if r.state.Deviating && absDiff.LessThan(decimal.NewFromInt(normalRTPDeviation)) {
		r.state.Deviating = false
		r.state.Direction = ""
		r.logger.Info("window RTP back to normal", zap.String("window_rtp", r.state.WindowRTP.StringFixed(2)))
	}
	return false
}

func rtp(payout, bet decimal.Decimal) decimal.Decimal {
	if !bet.IsPositive() {
		return decimal.Zero
	}
	return payout.Div(bet).Mul(hundred)
}
