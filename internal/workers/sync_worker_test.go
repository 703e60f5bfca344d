package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/mock"
	"github.com/MKhiriev/go-melon-sync/models"
	"go.uber.org/mock/gomock"
)

func TestSyncWorker_DelegatesToJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientSyncJob(ctrl)

	state := models.SyncState{"todos": {Direction: models.DirectionPush}}
	ctx := context.Background()

	gomock.InOrder(
		job.EXPECT().Start(ctx, state, time.Minute),
		job.EXPECT().Stop(),
	)

	w := NewSyncWorker(job, state, time.Minute)
	w.Run(ctx)
	w.Stop()
}

func TestSyncWorker_InWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock.NewMockClientSyncJob(ctrl)
	second := mock.NewMockClientSyncJob(ctrl)

	gomock.InOrder(
		first.EXPECT().Start(gomock.Any(), gomock.Any(), 10*time.Second),
		second.EXPECT().Start(gomock.Any(), gomock.Any(), 20*time.Second),
		second.EXPECT().Stop(),
		first.EXPECT().Stop(),
	)

	ws := NewWorkers(
		NewSyncWorker(first, models.SyncState{}, 10*time.Second),
		NewSyncWorker(second, models.SyncState{}, 20*time.Second),
	)
	ws.Run(context.Background())
	ws.Stop()
}
