package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Setup errors
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrCommandsDirNotFound = "COMMANDS_DIR_NOT_FOUND"

	// Catalog errors
	ErrCatalogEmpty    = "CATALOG_EMPTY"
	ErrCommandNotFound = "COMMAND_NOT_FOUND"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Validation errors
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrInvalidInput     = "INVALID_INPUT"

	// Access errors
	ErrNotAdmin = "NOT_ADMIN"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnFileSkipped    = "FILE_SKIPPED"
	WarnMissingDir     = "CATEGORY_DIR_MISSING"
	WarnResultsTrimmed = "RESULTS_TRUNCATED"
)
