// Package scheduler runs the background maintenance jobs.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"feedloop-server/internal/logger"
	"feedloop-server/internal/services"
)

// Manager owns the gocron scheduler and the jobs registered on it.
type Manager struct {
	scheduler   gocron.Scheduler
	invitations *services.InvitationService
}

// Start creates the scheduler, registers all jobs and starts them.
func Start(invitations *services.InvitationService) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	m := &Manager{scheduler: s, invitations: invitations}

	_, err = m.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(m.purgeExpiredInvitations),
		gocron.WithName("purge-expired-invitations"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	m.scheduler.Start()
	logger.Info("Scheduler started")
	return m, nil
}

// purgeExpiredInvitations reclaims expired pending-invitation rows. Queries
// already exclude expired rows, so a missed run never changes behavior.
func (m *Manager) purgeExpiredInvitations() {
	purged, err := m.invitations.PurgeExpired()
	if err != nil {
		logger.Error("Failed to purge expired invitations: %v", err)
		return
	}
	if purged > 0 {
		logger.Info("Purged %d expired pending invitation(s)", purged)
	}
}

// Stop shuts the scheduler down.
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
}
