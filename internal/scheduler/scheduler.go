package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSpec refreshes every 5 minutes.
const DefaultSpec = "*/5 * * * *"

const refreshTimeout = 2 * time.Minute

// Refresher recomputes cached statistics.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Scheduler struct {
	ctx       context.Context
	refresher Refresher
	logger    *logrus.Logger
	cron      *cron.Cron
	spec      string
}

func NewScheduler(ctx context.Context, refresher Refresher, spec string, logger *logrus.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Scheduler{
		ctx:       ctx,
		refresher: refresher,
		logger:    logger,
		cron:      cron.New(),
		spec:      spec,
	}
}

// Start the scheduler
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.refresh)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("Stats refresh scheduled")
	return nil
}

// RunOnce refreshes immediately, outside the schedule.
func (s *Scheduler) RunOnce() {
	s.refresh()
}

// refresh recomputes every window and summary under a bounded context
func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(s.ctx, refreshTimeout)
	defer cancel()

	start := time.Now()
	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to refresh feed stats")
		return
	}
	s.logger.WithField("duration", time.Since(start)).Debug("Feed stats refreshed")
}

// Stop the scheduler and wait for a running refresh to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
