package app

import (
	"context"
	"errors"
	"time"

	"github.com/mwhite-io/meridian/internal/clients/cloud"
	"github.com/mwhite-io/meridian/internal/common"
	"github.com/mwhite-io/meridian/internal/interfaces"
)

// startSnapshotScheduler refreshes the dashboard snapshot on a fixed
// interval so the gateway serves warm data between user requests.
func startSnapshotScheduler(ctx context.Context, dash interfaces.DashboardService, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Snapshot scheduler: stopped")
			return
		case <-ticker.C:
			refreshSnapshot(ctx, dash, logger)
		}
	}
}

func refreshSnapshot(ctx context.Context, dash interfaces.DashboardService, logger *common.Logger) {
	start := time.Now()

	snap, err := dash.Snapshot(ctx, true)
	if err != nil {
		// Not logged in yet, or session expired mid-run. Nothing to refresh
		// until the user authenticates again.
		if errors.Is(err, cloud.ErrNotAuthenticated) || errors.Is(err, cloud.ErrSessionExpired) {
			logger.Debug().Msg("Snapshot scheduler: no active session")
			return
		}
		logger.Warn().Err(err).Msg("Snapshot scheduler: refresh failed")
		return
	}

	logger.Info().
		Int("portfolios", len(snap.Portfolios)).
		Dur("elapsed", time.Since(start)).
		Msg("Snapshot scheduler: refresh complete")
}
