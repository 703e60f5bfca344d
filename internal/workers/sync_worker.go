package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/models"
)

// SyncWorker runs a periodic sync of one sync state.
type SyncWorker struct {
	job      service.ClientSyncJob
	state    models.SyncState
	interval time.Duration
}

func NewSyncWorker(job service.ClientSyncJob, state models.SyncState, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		job:      job,
		state:    state,
		interval: interval,
	}
}

func (w *SyncWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.state, w.interval)
}

func (w *SyncWorker) Stop() {
	w.job.Stop()
}
