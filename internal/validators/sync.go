package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-melon-sync/models"
)

// Field names accepted by SyncValidator.Validate to scope validation.
const (
	FieldCollection     = "collection"
	FieldID             = "id"
	FieldData           = "data"
	FieldDocuments      = "documents"
	FieldLength         = "length"
	FieldUpdatedAfter   = "updated_after"
	FieldAfterSeq       = "after_seq"
	FieldDirection      = "direction"
	FieldFieldMap       = "field_map"
	FieldExcludedFields = "excluded_fields"
)

const maxDocumentIDLength = 255

var collectionNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

var reservedFieldNames = []string{
	models.FieldIsDeleted,
	models.FieldUpdatedAt,
	models.FieldSessionID,
}

// IsValidCollectionName reports whether name can be used as a collection
// name on both sides of a sync.
func IsValidCollectionName(name string) bool {
	return collectionNamePattern.MatchString(name)
}

// IsValidDocumentID reports whether id can key a document. Ids travel in URL
// paths, so slashes and control characters are rejected.
func IsValidDocumentID(id string) bool {
	if id == "" || len(id) > maxDocumentIDLength {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return r == '/' || unicode.IsControl(r) || unicode.IsSpace(r)
	})
}

// SyncValidator validates sync state and document payloads.
type SyncValidator struct {
}

func NewSyncValidator() Validator {
	return &SyncValidator{}
}

// Validate dispatches on the type of obj. Supported: models.SyncState,
// models.Document, models.SetDocumentsRequest and models.ChangesQuery,
// as values or pointers.
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncState:
		return v.validateSyncState(ctx, value)

	case models.Document:
		return v.validateDocument(ctx, value, fields...)
	case *models.Document:
		return v.validateDocument(ctx, *value, fields...)

	case models.SetDocumentsRequest:
		return v.validateSetDocumentsRequest(ctx, value, fields...)
	case *models.SetDocumentsRequest:
		return v.validateSetDocumentsRequest(ctx, *value, fields...)

	case models.ChangesQuery:
		return v.validateChangesQuery(ctx, value, fields...)
	case *models.ChangesQuery:
		return v.validateChangesQuery(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateSyncState(ctx context.Context, state models.SyncState) error {
	if state == nil {
		return ErrNilSyncState
	}

	for _, name := range state.Collections() {
		if !IsValidCollectionName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidCollectionName, name)
		}
		cs := state[name]
		if cs == nil {
			return fmt.Errorf("%w: %s", ErrNilCollectionState, name)
		}
		if err := v.validateCollectionState(ctx, *cs); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}

	return nil
}

func (v *SyncValidator) validateCollectionState(_ context.Context, cs models.CollectionState) error {
	switch cs.Direction {
	case "", models.DirectionPush, models.DirectionPull, models.DirectionBoth:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, cs.Direction)
	}

	remoteNames := make(map[string]string, len(cs.FieldMap))
	for local, remote := range cs.FieldMap {
		if local == "" || remote == "" {
			return ErrEmptyFieldName
		}
		if isReservedFieldName(local) || isReservedFieldName(remote) {
			return fmt.Errorf("%w: %s -> %s", ErrReservedFieldName, local, remote)
		}
		if other, ok := remoteNames[remote]; ok {
			return fmt.Errorf("%w: %s and %s -> %s", ErrDuplicateFieldMapping, other, local, remote)
		}
		remoteNames[remote] = local
	}
	for _, field := range cs.ExcludedFields {
		if field == "" {
			return fmt.Errorf("%s: %w", FieldExcludedFields, ErrEmptyFieldName)
		}
	}

	return nil
}

func (v *SyncValidator) validateDocument(_ context.Context, doc models.Document, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if !IsValidDocumentID(doc.ID) {
				return fmt.Errorf("%w: %q", ErrInvalidDocumentID, doc.ID)
			}
		case FieldCollection:
			if !IsValidCollectionName(doc.Collection) {
				return fmt.Errorf("%w: %q", ErrInvalidCollectionName, doc.Collection)
			}
		case FieldData:
			for name := range doc.Data {
				if name == "" {
					return ErrEmptyFieldName
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateSetDocumentsRequest(ctx context.Context, req models.SetDocumentsRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDocuments, FieldLength}
	}

	for _, f := range fields {
		switch f {
		case FieldDocuments:
			if len(req.Documents) == 0 {
				return ErrEmptyDocuments
			}
			for i, doc := range req.Documents {
				if err := v.validateDocument(ctx, doc); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		case FieldLength:
			if req.Length != len(req.Documents) {
				return ErrLengthMismatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateChangesQuery(_ context.Context, query models.ChangesQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCollection, FieldAfterSeq, FieldUpdatedAfter}
	}

	for _, f := range fields {
		switch f {
		case FieldCollection:
			if !IsValidCollectionName(query.Collection) {
				return fmt.Errorf("%w: %q", ErrInvalidCollectionName, query.Collection)
			}
		case FieldAfterSeq:
			if query.AfterSeq < 0 {
				return ErrNegativeCursor
			}
		case FieldUpdatedAfter:
			if !query.UpdatedAfter.IsZero() && query.UpdatedAfter.UnixNano() < 0 {
				return ErrNegativeCursor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isReservedFieldName(name string) bool {
	for _, reserved := range reservedFieldNames {
		if name == reserved {
			return true
		}
	}
	return false
}
