package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/store"
)

// DefaultInvitationRetention is how long an expired invitation lingers
// before housekeeping prunes it. Keeping expired rows around for a while
// lets landlords see what lapsed.
const DefaultInvitationRetention = 30 * 24 * time.Hour

// HousekeepingService periodically prunes expired invitation records so the
// table does not grow without bound.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. A non-positive
// interval defaults to 1 hour; a non-positive retention defaults to 30 days.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultInvitationRetention
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop shuts the worker down and blocks until any in-progress sweep
// finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep once immediately on startup.
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep deletes pending invitations whose expiry passed more than the
// retention window ago. Recently expired rows stay visible.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.Retention)

	deleted, err := s.Store.Invitations().DeleteExpiredInvitations(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune expired invitations", "error", err)
		return
	}

	if deleted > 0 {
		s.Logger.Info("pruned expired invitations", "deleted", deleted)
	}
}
