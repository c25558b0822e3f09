// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Catalog errors
	ErrInvalidCatalog     = errors.New("invalid catalog")
	ErrEmptyCatalog       = errors.New("catalog has no categories")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrDuplicateCategory  = errors.New("duplicate category")
	ErrDuplicateSource    = errors.New("duplicate source in category")
	ErrInvalidTemplate    = errors.New("invalid url template")
	ErrMissingPlaceholder = errors.New("template must contain exactly one placeholder")

	// Identifier errors
	ErrEmptyIdentifier = errors.New("identifier cannot be empty")

	// Run errors
	ErrRunCanceled     = errors.New("run was canceled")
	ErrCategoryFailed  = errors.New("category task failed")
	ErrCategoryPanic   = errors.New("category task panicked")
	ErrProbePanic      = errors.New("probe panicked")
	ErrNotAttempted    = errors.New("category not attempted")
	ErrNoTransport     = errors.New("no transport configured")
	ErrInvalidSettings = errors.New("invalid probe settings")

	// Export errors
	ErrExportFailed      = errors.New("export failed")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInvalidOutputPath = errors.New("invalid output path")
)
