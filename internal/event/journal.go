package event

import (
	"context"
	"slot_machine/internal/model"
	"slot_machine/internal/repository"
	"time"

	"go.uber.org/zap"
)

const journalTimeout = 3 * time.Second

// JournalSink сохраняет оценённые спины в журнал. Ошибки только логируются
type JournalSink struct {
	repo   repository.SpinRepository
	logger *zap.Logger
}

func NewJournalSink(repo repository.SpinRepository, logger *zap.Logger) *JournalSink {
	return &JournalSink{repo: repo, logger: logger.Named("journal")}
}

func (s *JournalSink) Publish(ctx context.Context, e model.Event) {
	if e.Kind != model.EventSpinEvaluated || e.Result == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if err := s.repo.Save(ctx, *e.Result); err != nil {
		s.logger.Error("failed to journal spin", zap.Stringer("spin_id", e.Result.ID), zap.Error(err))
	}
}

// StatsSink обновляет статистику RTP
type StatsSink struct {
	repo repository.StatsRepository
}

func NewStatsSink(repo repository.StatsRepository) *StatsSink {
	return &StatsSink{repo: repo}
}

func (s *StatsSink) Publish(_ context.Context, e model.Event) {
	if e.Kind != model.EventSpinEvaluated || e.Result == nil {
		return
	}
	s.repo.UpdateState(e.Result.Bet, e.Result.Win.Total)
	s.repo.DeviationCheck()
}
