package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hellmakima/instagram/internal/auth/store"
)

// HousekeepingService periodically removes rows nothing can use anymore:
// refresh tokens past their audit retention and unverified accounts whose
// delete_at deadline elapsed.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Retention keeps expired/revoked refresh rows around for a while so
	// incident response can still see them.
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. A non-positive
// interval defaults to 1 hour, a non-positive retention to 24 hours.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 24 * time.Hour
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
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down, blocking until any in-progress sweep is done.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep performs one cleanup pass. Failures are independent; one sweep
// failing does not stop the other.
func (s *HousekeepingService) Sweep(ctx context.Context) {
	now := time.Now().UTC()

	tokens, err := s.Store.RefreshTokens().DeleteExpired(ctx, now, s.Retention)
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	}

	users, err := s.Store.Users().DeleteExpiredUnverifiedUsers(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired unverified users", "error", err)
	}

	s.Logger.Info("housekeeping sweep completed",
		"refresh_tokens_deleted", tokens,
		"unverified_users_deleted", users,
	)
}
