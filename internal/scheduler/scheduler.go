package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jobtrawl/jobtrawl/internal/pipeline"
)

// Scheduler runs the trawl pipeline on a fixed interval.
type Scheduler struct {
	pipeline *pipeline.Pipeline
	opts     pipeline.Options
	interval time.Duration
	log      *zap.Logger
}

// New creates a new scheduler.
func New(p *pipeline.Pipeline, opts pipeline.Options, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval == 0 {
		interval = 4 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		pipeline: p,
		opts:     opts,
		interval: interval,
		log:      log,
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start.
	s.trawl(ctx)

	s.log.Info("scheduler running", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.trawl(ctx)
		}
	}
}

func (s *Scheduler) trawl(ctx context.Context) {
	stats, err := s.pipeline.Run(ctx, s.opts)
	if err != nil {
		s.log.Error("trawl failed", zap.Error(err))
		return
	}
	s.log.Info("trawl complete",
		zap.Int("found", stats.Found),
		zap.Int("new", stats.New),
		zap.Int("matched", stats.Matched),
		zap.Int("alerted", stats.Alerted))
}
