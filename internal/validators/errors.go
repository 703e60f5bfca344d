package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidCollectionName = errors.New("invalid collection name")
	ErrInvalidDocumentID     = errors.New("invalid document id")
	ErrEmptyDocuments        = errors.New("documents list cannot be empty")
	ErrLengthMismatch        = errors.New("length does not match the number of documents")
	ErrEmptyFieldName        = errors.New("field name cannot be empty")
	ErrNegativeCursor        = errors.New("cursor cannot be negative")

	ErrNilSyncState          = errors.New("sync state is nil")
	ErrNilCollectionState    = errors.New("collection state is nil")
	ErrInvalidDirection      = errors.New("invalid sync direction")
	ErrReservedFieldName     = errors.New("field name is reserved for bookkeeping")
	ErrDuplicateFieldMapping = errors.New("two fields are mapped to the same remote name")
)
