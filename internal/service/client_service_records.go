package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/validators"
	"github.com/MKhiriev/go-melon-sync/models"
)

type clientRecordService struct {
	local store.LocalDatabase

	logger *logger.Logger
}

func NewClientRecordService(local store.LocalDatabase, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{
		local:  local,
		logger: logger,
	}
}

func (s *clientRecordService) Create(ctx context.Context, collection string, fields models.Fields) (models.Record, error) {
	if err := validateFields(fields); err != nil {
		return models.Record{}, err
	}
	c, err := s.local.Collection(collection)
	if err != nil {
		return models.Record{}, err
	}

	record, err := c.Create(ctx, fields)
	if err != nil {
		return models.Record{}, fmt.Errorf("create record in %s: %w", collection, err)
	}

	s.logger.Debug().
		Str("func", "clientRecordService.Create").
		Str("collection", collection).
		Str("id", record.ID).
		Msg("record created")

	return record, nil
}

func (s *clientRecordService) Get(ctx context.Context, collection, id string) (models.Record, error) {
	c, err := s.local.Collection(collection)
	if err != nil {
		return models.Record{}, err
	}
	return c.Find(ctx, id)
}

func (s *clientRecordService) List(ctx context.Context, collection string) ([]models.Record, error) {
	c, err := s.local.Collection(collection)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx)
}

func (s *clientRecordService) Update(ctx context.Context, collection, id string, fields models.Fields) (models.Record, error) {
	if len(fields) == 0 {
		return models.Record{}, fmt.Errorf("%w: no fields to update", ErrInvalidDataProvided)
	}
	if err := validateFields(fields); err != nil {
		return models.Record{}, err
	}
	c, err := s.local.Collection(collection)
	if err != nil {
		return models.Record{}, err
	}

	record, err := c.Update(ctx, id, fields)
	if err != nil {
		return models.Record{}, fmt.Errorf("update record %s/%s: %w", collection, id, err)
	}

	return record, nil
}

func (s *clientRecordService) Delete(ctx context.Context, collection, id string) error {
	c, err := s.local.Collection(collection)
	if err != nil {
		return err
	}

	if err := c.MarkAsDeleted(ctx, id); err != nil {
		return fmt.Errorf("delete record %s/%s: %w", collection, id, err)
	}

	return nil
}

func validateFields(fields models.Fields) error {
	for name := range fields {
		if name == "" {
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyFieldName)
		}
		if isBookkeepingField(name) {
			return fmt.Errorf("%w: %w: %s", ErrInvalidDataProvided, validators.ErrReservedFieldName, name)
		}
	}
	return nil
}
