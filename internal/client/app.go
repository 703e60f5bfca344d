package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-melon-sync/internal/adapter"
	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/tui"
	"github.com/MKhiriev/go-melon-sync/internal/workers"
	"github.com/MKhiriev/go-melon-sync/models"
)

type App struct {
	cfg *config.ClientConfig

	local    store.LocalDatabase
	services *service.ClientServices
	server   adapter.ServerAdapter
	closers  []func() error

	ui     *tui.TUI
	logger *logger.Logger
}

// NewApp opens the local database and the remote document store named by
// cfg. The remote is a SQL store when cfg.Sync.RemoteDSN is set and the
// document server otherwise.
func NewApp(ctx context.Context, cfg *config.ClientConfig, ui *tui.TUI, logger *logger.Logger) (*App, error) {
	app := &App{cfg: cfg, ui: ui, logger: logger}

	localStorages, err := store.NewClientStorages(ctx, cfg.Storage, cfg.Sync.Collections, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	app.local = localStorages.LocalDatabase
	app.closers = append(app.closers, localStorages.Close)

	remote, err := app.openRemote(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.services = service.NewClientServices(app.local, remote, cfg.Sync, logger)
	return app, nil
}

func (a *App) openRemote(ctx context.Context) (store.DocumentStore, error) {
	if a.cfg.Sync.RemoteDSN != "" {
		storages, err := store.NewStorages(ctx, a.cfg.Sync.RemoteDSN, a.logger)
		if err != nil {
			return nil, fmt.Errorf("create remote storage: %w", err)
		}
		a.closers = append(a.closers, storages.Close)
		return storages.DocumentStore, nil
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(a.cfg.Adapter, a.cfg.App, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}
	a.server = serverAdapter
	return serverAdapter, nil
}

func (a *App) Records() service.ClientRecordService {
	return a.services.RecordService
}

// syncState loads the persisted state and overlays the configured mapping.
// Persisted entries of collections that are no longer configured are left
// out.
func (a *App) syncState(ctx context.Context) (models.SyncState, error) {
	persisted, err := a.local.LoadSyncState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sync state: %w", err)
	}
	a.cfg.ApplyTo(persisted)

	state := make(models.SyncState, len(a.cfg.Sync.Collections))
	for _, name := range a.cfg.Sync.Collections {
		state[name] = persisted[name]
	}
	return state, nil
}

func (a *App) Sync(ctx context.Context) (models.SyncReport, error) {
	state, err := a.syncState(ctx)
	if err != nil {
		return models.SyncReport{}, err
	}

	report, syncErr := a.services.SyncService.SyncWithReport(ctx, state)

	if err := a.local.SaveSyncState(context.WithoutCancel(ctx), state); err != nil {
		return report, errors.Join(syncErr, fmt.Errorf("save sync state: %w", err))
	}
	return report, syncErr
}

func (a *App) Watch(ctx context.Context) error {
	state, err := a.syncState(ctx)
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reports := make(chan tui.Report, 1)
	onReport := func(report models.SyncReport, err error) {
		select {
		case reports <- tui.Report{Report: report, Err: err}:
		case <-watchCtx.Done():
		}
	}

	job := service.NewClientSyncJob(a.services.SyncService, a.local, onReport, a.logger)
	ws := workers.NewWorkers(workers.NewSyncWorker(job, state, a.cfg.Workers.SyncInterval))

	ws.Run(watchCtx)
	err = a.ui.Watch(watchCtx, reports, a.cfg.Workers.SyncInterval)
	cancel()
	ws.Stop()

	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

func (a *App) ServerVersion(ctx context.Context) (string, error) {
	if a.server == nil {
		return "", nil
	}
	return a.server.GetServerVersion(ctx)
}

// Close closes the connections in reverse opening order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
