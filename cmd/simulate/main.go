// Команда simulate прогоняет сессию без HTTP с фиксированным шагом таймера
// и печатает фактический RTP против теоретического.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"slot_machine/internal/config/env"
	"slot_machine/internal/event"
	"slot_machine/internal/logger"
	"slot_machine/internal/model"
	"slot_machine/internal/repository/stats_repo"
	"slot_machine/internal/service/payline"
	"slot_machine/internal/service/reel"
	"slot_machine/internal/service/session"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

func main() {
	var (
		spins    = flag.Int("spins", 1000, "number of spins to play")
		seed     = flag.Uint64("seed", 0, "random seed, 0 picks one")
		cfgPath  = flag.String("config", env.ConfigPath(), "engine config path")
		balance  = flag.Int("balance", 0, "starting balance, 0 keeps the configured one")
		logLevel = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	l, err := logger.New(*logLevel, false)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	if err = run(l, *cfgPath, *spins, *seed, *balance); err != nil {
		l.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(l *zap.Logger, cfgPath string, spins int, seed uint64, balance int) error {
	cfg, err := env.NewEngineConfigFromYAML(cfgPath)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = cfg.Seed()
	}
	bet := cfg.Bet()
	if balance > 0 {
		bet.Balance = balance
	}

	reels, err := reel.NewSet(cfg.Reels(), reel.ConfigFrom(cfg), model.AllSymbols, seed)
	if err != nil {
		return err
	}
	eval, err := payline.NewEvaluator(payline.DefaultPaylines(), cfg.Reels(), cfg.VisibleRows())
	if err != nil {
		return err
	}
	target, err := session.ExpectedRTP(eval, model.AllSymbols)
	if err != nil {
		return err
	}

	stats := stats_repo.NewStatsRepository(target, cfg.StatsWindow(), l)
	svc, err := session.NewSessionService(
		bet,
		lo.Map(reels, func(r *reel.Reel, _ int) session.Reel { return r }),
		eval,
		event.NewStatsSink(stats),
		l,
	)
	if err != nil {
		return err
	}

	ctx := context.Background()
	dt := time.Second / time.Duration(cfg.TickRate())
	played := 0
	for ; played < spins; played++ {
		svc.StartSpin(ctx)
		if svc.State().Phase == model.PhaseIdle {
			l.Warn("spin rejected, stopping", zap.Int("balance", svc.State().Bet.Balance))
			break
		}
		for svc.State().Phase != model.PhaseIdle {
			svc.Tick(ctx, dt)
		}
	}

	st := stats.Stats()
	fmt.Printf("spins played:  %d\n", played)
	fmt.Printf("total bet:     %s\n", st.TotalBet)
	fmt.Printf("total payout:  %s\n", st.TotalPayout)
	fmt.Printf("actual rtp:    %s%%\n", st.CurrentRTP.StringFixed(2))
	fmt.Printf("expected rtp:  %s%%\n", st.TargetRTP.StringFixed(2))
	fmt.Printf("final balance: %d\n", svc.State().Bet.Balance)
	return nil
}
