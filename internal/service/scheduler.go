package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type refresher interface {
	Refresh(ctx context.Context, today time.Time) (*RefreshSummary, error)
}

// RefreshScheduler drives the upcoming-events recomputation on a cron
// schedule so the rolling window keeps moving without API traffic.
type RefreshScheduler struct {
	svc    refresher
	spec   string
	cron   *cron.Cron
	logger *zap.Logger
}

// NewRefreshScheduler constructs the scheduler.
func NewRefreshScheduler(svc refresher, spec string, logger *zap.Logger) *RefreshScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefreshScheduler{svc: svc, spec: spec, logger: logger}
}

// Start registers the cron entry and begins scheduling.
func (s *RefreshScheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Sugar().Infow("refresh scheduler started", "spec", s.spec)
	return nil
}

// Stop halts scheduling and waits for a running refresh to finish.
func (s *RefreshScheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Sugar().Infow("refresh scheduler stopped")
}

func (s *RefreshScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := s.svc.Refresh(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Sugar().Errorw("scheduled refresh failed", "error", err)
		return
	}
	s.logger.Sugar().Infow("scheduled refresh completed", "computed", summary.Computed, "skipped", summary.Skipped)
}
