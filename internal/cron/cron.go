// Package cron schedules background maintenance jobs.
package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/logger"
)

// Manager runs scheduled maintenance jobs.
type Manager struct {
	cron  *cron.Cron
	maint *service.MaintenanceService
	log   logger.Logger
}

// NewManager creates the job manager.
func NewManager(maint *service.MaintenanceService, log logger.Logger) *Manager {
	return &Manager{
		cron:  cron.New(cron.WithLocation(time.Local)),
		maint: maint,
		log:   log,
	}
}

// Start registers the orphan blob sweep on the given cron schedule and
// starts the scheduler. An empty schedule disables the job.
func (m *Manager) Start(schedule string) error {
	if schedule == "" {
		m.log.Info("blob prune job disabled")
		return nil
	}

	_, err := m.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		start := time.Now()
		pruned, err := m.maint.PruneOrphanBlobs(ctx)
		if err != nil {
			m.log.Error("blob prune job failed", logger.Error(err))
			return
		}
		m.log.Info("blob prune job completed",
			logger.Int("pruned", pruned),
			logger.Duration("took", time.Since(start)))
	})
	if err != nil {
		return err
	}

	m.cron.Start()
	m.log.Info("cron manager started", logger.String("prune_schedule", schedule))
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron manager stopped")
}
