package event

import (
	"context"
	"slot_machine/internal/model"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSink счётчики Prometheus по событиям сессии
type MetricsSink struct {
	spins      prometheus.Counter
	wins       prometheus.Counter
	wagered    prometheus.Counter
	paid       prometheus.Counter
	balance    prometheus.Gauge
	bet        prometheus.Gauge
	reelStops  *prometheus.CounterVec
	lineWins   *prometheus.CounterVec
	winPerSpin prometheus.Histogram
}

func NewMetricsSink(reg prometheus.Registerer) *MetricsSink {
	f := promauto.With(reg)
	return &MetricsSink{
		spins: f.NewCounter(prometheus.CounterOpts{
			Namespace: "slot", Name: "spins_total", Help: "Evaluated spins.",
		}),
		wins: f.NewCounter(prometheus.CounterOpts{
			Namespace: "slot", Name: "winning_spins_total", Help: "Spins that paid anything.",
		}),
		wagered: f.NewCounter(prometheus.CounterOpts{
			Namespace: "slot", Name: "wagered_total", Help: "Sum of bets of evaluated spins.",
		}),
		paid: f.NewCounter(prometheus.CounterOpts{
			Namespace: "slot", Name: "paid_total", Help: "Sum of payouts.",
		}),
		balance: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "slot", Name: "balance", Help: "Current player balance.",
		}),
		bet: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "slot", Name: "current_bet", Help: "Current bet.",
		}),
		reelStops: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slot", Name: "reel_stops_total", Help: "Reel stops by reel index.",
		}, []string{"reel"}),
		lineWins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slot", Name: "line_wins_total", Help: "Winning paylines by symbol and match count.",
		}, []string{"symbol", "count"}),
		winPerSpin: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "slot", Name: "win_multiplier", Help: "Spin win divided by bet.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		}),
	}
}

func (m *MetricsSink) Publish(_ context.Context, e model.Event) {
	switch e.Kind {
	case model.EventBalanceChanged:
		m.balance.Set(float64(e.Balance))
	case model.EventBetChanged:
		m.bet.Set(float64(e.Bet))
	case model.EventReelStopped:
		m.reelStops.WithLabelValues(strconv.Itoa(e.Reel)).Inc()
	case model.EventSpinEvaluated:
		if e.Result == nil {
			return
		}
		res := e.Result
		m.spins.Inc()
		m.wagered.Add(float64(res.Bet))
		m.paid.Add(float64(res.Win.Total))
		m.balance.Set(float64(res.BalanceAfter))
		if res.Win.Total > 0 {
			m.wins.Inc()
		}
		if res.Bet > 0 {
			m.winPerSpin.Observe(float64(res.Win.Total) / float64(res.Bet))
		}
		for _, l := range res.Win.Lines {
			m.lineWins.WithLabelValues(l.Symbol.String(), strconv.Itoa(l.Count)).Inc()
		}
	}
}
