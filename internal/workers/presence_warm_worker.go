package workers

import (
	"context"
	"time"

	"campus-hub/agora/internal/logging"
	"campus-hub/agora/internal/services"
)

// PresenceWarmWorker keeps the presence snapshots of the tracked campuses
// warm so API reads rarely hit the upstream on the hot path, and rebuilds
// the online roster from them.
type PresenceWarmWorker struct {
	presence  *services.PresenceService
	campusIDs []int
	interval  time.Duration
}

func NewPresenceWarmWorker(presence *services.PresenceService, campusIDs []int) *PresenceWarmWorker {
	return &PresenceWarmWorker{
		presence:  presence,
		campusIDs: campusIDs,
		interval:  45 * time.Second,
	}
}

// Start runs the warm loop until ctx is cancelled. One pass runs
// immediately so the first API read after boot already has a snapshot.
func (w *PresenceWarmWorker) Start(ctx context.Context) {
	if len(w.campusIDs) == 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.warmPass(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.warmPass(ctx)
		}
	}
}

func (w *PresenceWarmWorker) warmPass(ctx context.Context) {
	for _, campusID := range w.campusIDs {
		if _, err := w.presence.GetActivePeers(ctx, campusID); err != nil {
			logging.Warn("presence warm pass failed",
				"campus_id", campusID,
				"error", err.Error(),
			)
		}
	}
	w.presence.RefreshOnlineRoster(ctx, w.campusIDs)
}
