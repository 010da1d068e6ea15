// Package scheduler wires up the cron job that periodically reprices the
// whole unsold inventory.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	applog "crateworth/internal/log"
	"crateworth/internal/services"
)

type Scheduler struct {
	cron    *cron.Cron
	pricing *services.PricingService
	spec    string // cron spec, e.g. "@daily" or "0 3 * * *"
}

func New(pricing *services.PricingService, spec string) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		pricing: pricing,
		spec:    spec,
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so a fresh install gets priced without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}

	s.cron.Start()
	applog.Job("scheduler.start", map[string]any{"spec": s.spec})

	go s.run(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	applog.Job("scheduler.stop", nil)
}

func (s *Scheduler) run(ctx context.Context) {
	applog.Job("scheduler.refresh.begin", nil)
	refreshed, failed := s.pricing.RefreshAll(ctx)
	applog.Job("scheduler.refresh.end", map[string]any{"refreshed": refreshed, "failed": failed})
}
