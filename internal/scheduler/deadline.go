package scheduler

import (
	"context"
	"fmt"
	"time"

	"recruitment-portal/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSpec = "@every 1h"

type ExpiredCloser interface {
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// DeadlineSweeper closes open postings whose application deadline has passed.
type DeadlineSweeper struct {
	cron    *cron.Cron
	jobs    ExpiredCloser
	logger  *zap.Logger
	timeout time.Duration

	now func() time.Time
}

func NewDeadlineSweeper(spec string, jobs ExpiredCloser, logger *zap.Logger) (*DeadlineSweeper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec == "" {
		spec = DefaultSpec
	}
	s := &DeadlineSweeper{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		jobs:    jobs,
		logger:  logger,
		timeout: 30 * time.Second,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.Sweep(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule deadline sweep %q: %w", spec, err)
	}
	return s, nil
}

func (s *DeadlineSweeper) Start() {
	s.cron.Start()
	s.logger.Info("deadline sweeper started", zap.Int("entries", len(s.cron.Entries())))
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *DeadlineSweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("deadline sweeper stop timed out")
	}
}

func (s *DeadlineSweeper) Sweep(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.jobs.CloseExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("deadline sweep failed", zap.Error(err))
		return 0
	}
	metrics.RecordJobsClosed(n)
	s.logger.Info("deadline sweep finished", zap.Int64("closed", n))
	return n
}
