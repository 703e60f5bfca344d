package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/utils"
	"github.com/MKhiriev/go-melon-sync/internal/validators"
	"github.com/MKhiriev/go-melon-sync/models"
)

const (
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 100 * time.Millisecond
)

// Clock returns the current time. Remote documents and sync reports are
// stamped with it.
type Clock func() time.Time

// ClientSyncOption configures a ClientSyncService.
type ClientSyncOption func(*clientSyncService)

// WithMaxRetries sets how many times a transient remote failure is retried.
// Zero disables retries.
func WithMaxRetries(n uint64) ClientSyncOption {
	return func(s *clientSyncService) {
		s.maxRetries = n
	}
}

// WithRetryBaseDelay sets the first backoff delay. It doubles on every retry.
func WithRetryBaseDelay(d time.Duration) ClientSyncOption {
	return func(s *clientSyncService) {
		if d > 0 {
			s.retryBaseDelay = d
		}
	}
}

// WithSessionIDGenerator replaces the UUIDv7 generator of session ids.
func WithSessionIDGenerator(gen utils.IDGenerator) ClientSyncOption {
	return func(s *clientSyncService) {
		s.ids = gen
	}
}

// traceIDs tags every sync run so that its requests can be found in the
// document server logs.
var traceIDs = utils.NewUUIDGenerator()

type clientSyncService struct {
	local     store.LocalDatabase
	remote    store.DocumentStore
	planner   SyncService
	validator validators.Validator
	clock     Clock
	ids       utils.IDGenerator

	maxRetries     uint64
	retryBaseDelay time.Duration

	mu sync.Mutex

	logger *logger.Logger
}

// NewClientSyncService creates a ClientSyncService syncing local with remote.
// A nil clock means time.Now.
func NewClientSyncService(local store.LocalDatabase, remote store.DocumentStore, clock Clock, logger *logger.Logger, opts ...ClientSyncOption) ClientSyncService {
	if clock == nil {
		clock = time.Now
	}

	s := &clientSyncService{
		local:          local,
		remote:         remote,
		planner:        NewSyncService(),
		validator:      validators.NewSyncValidator(),
		clock:          clock,
		ids:            utils.NewUUIDGenerator(),
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sync runs one synchronization of state between local and remote. It is
// safe to call repeatedly with the same state: each call processes only the
// changes made since the previous one.
func Sync(ctx context.Context, local store.LocalDatabase, state models.SyncState, remote store.DocumentStore, clock Clock) error {
	return NewClientSyncService(local, remote, clock, logger.FromContext(ctx)).Sync(ctx, state)
}

func (s *clientSyncService) Sync(ctx context.Context, state models.SyncState) error {
	_, err := s.SyncWithReport(ctx, state)
	return err
}

func (s *clientSyncService) SyncWithReport(ctx context.Context, state models.SyncState) (report models.SyncReport, err error) {
	if !s.mu.TryLock() {
		return models.SyncReport{}, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	if err := s.validator.Validate(ctx, state); err != nil {
		return models.SyncReport{}, fmt.Errorf("%w: %w", ErrMalformedSyncState, err)
	}

	if _, ok := utils.GetTraceIDFromContext(ctx); !ok {
		ctx = utils.WithTraceID(ctx, traceIDs.Generate())
	}

	report.StartedAt = s.clock()
	defer func() {
		report.FinishedAt = s.clock()
	}()

	for _, name := range state.Collections() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		collectionReport, err := s.syncCollection(ctx, name, state[name])
		report.Collections = append(report.Collections, collectionReport)
		if err != nil {
			s.logger.Err(err).
				Str("func", "clientSyncService.SyncWithReport").
				Str("collection", name).
				Msg("sync failed")
			return report, fmt.Errorf("sync collection %s: %w", name, err)
		}
	}

	s.logger.Debug().
		Str("func", "clientSyncService.SyncWithReport").
		Int("pushed", report.Pushed()).
		Int("pulled", report.Pulled()).
		Msg("sync finished")

	return report, nil
}

func (s *clientSyncService) syncCollection(ctx context.Context, name string, cs *models.CollectionState) (models.CollectionReport, error) {
	report := models.CollectionReport{Collection: name}
	ctx = s.logger.WithCollection(name).WithContext(ctx)

	if _, err := s.local.Collection(name); err != nil {
		return report, err
	}
	if cs.SessionID == "" {
		cs.SessionID = s.ids.Generate()
	}

	// pulled first: pending local records are never overwritten and win
	// when pushed right after
	if cs.Direction.Pulls() {
		if err := s.pull(ctx, name, cs, &report); err != nil {
			return report, fmt.Errorf("pull: %w", err)
		}
	}
	if cs.Direction.Pushes() {
		if err := s.push(ctx, name, cs, &report); err != nil {
			return report, fmt.Errorf("push: %w", err)
		}
	}

	return report, nil
}

func (s *clientSyncService) pull(ctx context.Context, name string, cs *models.CollectionState, report *models.CollectionReport) error {
	query := models.ChangesQuery{
		Collection:       name,
		AfterSeq:         cs.LastPulledSeq,
		ExcludeSessionID: cs.SessionID,
	}

	var docs []models.Document
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		docs, err = s.remote.GetChangedDocuments(ctx, query)
		return err
	})
	if err != nil {
		return mapRemoteError(err)
	}

	// the store orders writes by sequence, writer clocks play no part
	cursor := cs.LastPulledSeq
	records := make([]models.Record, 0, len(docs))
	for _, doc := range docs {
		cursor = max(cursor, doc.Seq)
		record := toRecord(doc, name, cs)
		if err := s.keepExcludedFields(ctx, name, cs, &record); err != nil {
			return err
		}
		records = append(records, record)
	}

	applied, skipped, err := s.local.ApplyRemoteChanges(ctx, name, records...)
	if err != nil {
		return err
	}

	cs.LastPulledSeq = cursor
	cs.LastPulledAt = s.clock()
	cs.Pulled += int64(applied)
	report.Pulled = applied
	report.Skipped = skipped

	logger.FromContext(ctx).Debug().
		Str("func", "clientSyncService.pull").
		Int("applied", applied).
		Int("skipped", skipped).
		Int64("cursor", cursor).
		Msg("remote changes applied")

	return nil
}

// keepExcludedFields copies the local values of excluded fields into a
// pulled record, so that applying it does not erase them.
func (s *clientSyncService) keepExcludedFields(ctx context.Context, name string, cs *models.CollectionState, record *models.Record) error {
	if len(cs.ExcludedFields) == 0 || record.IsDeleted() {
		return nil
	}

	existing, err := s.local.Find(ctx, name, record.ID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	for _, field := range cs.ExcludedFields {
		if value, ok := existing.Fields[field]; ok {
			record.Fields[field] = value
		}
	}

	return nil
}

func (s *clientSyncService) push(ctx context.Context, name string, cs *models.CollectionState, report *models.CollectionReport) error {
	records, err := s.local.PendingChanges(ctx, name)
	if err != nil {
		return err
	}

	plan, err := s.planner.BuildPushPlan(ctx, records)
	if err != nil {
		return err
	}
	if plan.Len() == 0 {
		return nil
	}

	updatedAt := s.clock().UTC()
	pushed := plan.All()
	docs := make([]models.Document, 0, len(pushed))
	for _, record := range pushed {
		docs = append(docs, toDocument(record, cs, updatedAt))
	}

	err = s.withRetry(ctx, func(ctx context.Context) error {
		return s.remote.SetDocuments(ctx, name, docs...)
	})
	if err != nil {
		return mapRemoteError(err)
	}

	settled, err := s.local.MarkSynced(ctx, name, pushed...)
	if err != nil {
		return err
	}
	if settled < len(pushed) {
		logger.FromContext(ctx).Debug().
			Str("func", "clientSyncService.push").
			Int("pending", len(pushed)-settled).
			Msg("records changed during push stay pending")
	}

	cs.LastPushedAt = updatedAt
	cs.Pushed += int64(len(docs))
	report.Created = len(plan.Create)
	report.Updated = len(plan.Update)
	report.Deleted = len(plan.Delete)

	return nil
}

// withRetry runs op, retrying transient failures with exponential backoff.
func (s *clientSyncService) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.retryBaseDelay))
	attempt := 0

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := op(ctx)
		if err == nil || !isRetryable(err) {
			return err
		}

		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "clientSyncService.withRetry").
			Int("attempt", attempt).
			Msg("remote call failed, retrying")
		return retry.RetryableError(err)
	})
}
