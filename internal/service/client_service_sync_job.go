package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/models"
)

const defaultSyncInterval = 30 * time.Second

// ReportHandler receives the outcome of every sync run by a ClientSyncJob.
type ReportHandler func(report models.SyncReport, err error)

type clientSyncJob struct {
	syncService ClientSyncService
	local       store.LocalDatabase
	onReport    ReportHandler

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a clientSyncJob that calls syncService.SyncWithReport
// on a ticker and saves the state into local after every run. onReport may be
// nil. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, local store.LocalDatabase, onReport ReportHandler, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		syncService: syncService,
		local:       local,
		onReport:    onReport,
		logger:      logger,
	}
}

// Start implements ClientSyncJob. The goroutine exits when ctx is cancelled
// or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, state models.SyncState, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.run(jobCtx, state)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.run(jobCtx, state)
			}
		}
	}()
}

func (j *clientSyncJob) run(ctx context.Context, state models.SyncState) {
	report, err := j.syncService.SyncWithReport(ctx, state)
	if err != nil && ctx.Err() == nil {
		j.logger.Err(err).Str("func", "clientSyncJob.run").Msg("scheduled sync failed")
	}

	// partial progress of a failed run is kept as well
	if saveErr := j.local.SaveSyncState(context.WithoutCancel(ctx), state); saveErr != nil {
		j.logger.Err(saveErr).Str("func", "clientSyncJob.run").Msg("failed to save sync state")
	}

	if j.onReport != nil {
		j.onReport(report, err)
	}
}

// Stop implements ClientSyncJob. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
