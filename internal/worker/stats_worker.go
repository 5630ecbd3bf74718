package worker

import (
	"context"
	"time"

	"github.com/examportal/examportal-backend/internal/service"
	"github.com/rs/zerolog"
)

// StatsWorker periodically rebuilds the statistics snapshot in Redis so admin
// dashboard reads stay cheap even between submissions.
type StatsWorker struct {
	examService *service.ExamService
	cache       service.StatsCache
	interval    time.Duration
	log         zerolog.Logger
}

// NewStatsWorker creates a new StatsWorker.
func NewStatsWorker(examService *service.ExamService, cache service.StatsCache, interval time.Duration, log zerolog.Logger) *StatsWorker {
	return &StatsWorker{
		examService: examService,
		cache:       cache,
		interval:    interval,
		log:         log.With().Str("component", "stats_worker").Logger(),
	}
}

// Start runs the refresh loop until ctx is cancelled.
func (w *StatsWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("StatsWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("StatsWorker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StatsWorker) refresh(ctx context.Context) {
	stats, err := w.examService.ComputeStatistics(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("compute statistics")
		return
	}
	if err := w.cache.Set(ctx, stats); err != nil {
		w.log.Error().Err(err).Msg("write statistics cache")
	}
}
