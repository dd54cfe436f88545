package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/xminds/internal/sandbox/store"
)

// DefaultHousekeepingInterval is used when no interval is configured.
const DefaultHousekeepingInterval = time.Hour

// Housekeeper prunes refresh tokens past their expiry. Rotation leaves one
// revoked row per login, so without it the token table only grows.
type Housekeeper struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time
}

// NewHousekeeper returns a Housekeeper on the wall clock. A non-positive
// interval means DefaultHousekeepingInterval.
func NewHousekeeper(st store.Store, logger *slog.Logger, interval time.Duration) *Housekeeper {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}
	return &Housekeeper{Store: st, Logger: logger, Interval: interval, Now: time.Now}
}

// Run prunes once right away and then on every tick until ctx is cancelled.
func (h *Housekeeper) Run(ctx context.Context) {
	h.Logger.Info("housekeeping started", "interval", h.Interval)
	defer h.Logger.Info("housekeeping stopped")

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	for {
		h.Prune(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Prune deletes expired refresh tokens and returns how many rows went.
// Failures are logged, not returned; the next tick tries again.
func (h *Housekeeper) Prune(ctx context.Context) int64 {
	n, err := h.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, h.Now())
	if err != nil {
		if ctx.Err() == nil {
			h.Logger.Error("prune refresh tokens", "error", err)
		}
		return 0
	}
	if n > 0 {
		h.Logger.Info("pruned refresh tokens", "deleted", n)
	}
	return n
}
