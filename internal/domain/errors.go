package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when no product has the requested SKU
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateSKU is returned when a SKU is already in the catalog
	ErrDuplicateSKU = errors.New("SKU already exists")

	// ErrSKUMismatch is returned when a replacement would change a record's SKU
	ErrSKUMismatch = errors.New("replacement changes SKU")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidImportMode is returned for a mode other than update, add or replace
	ErrInvalidImportMode = errors.New("import mode must be one of update, add, replace")

	// ErrDecodeFailed is returned when an uploaded file is not a readable spreadsheet
	ErrDecodeFailed = errors.New("error reading file, ensure it is a valid Excel file")

	// ErrFileTooLarge is returned when an upload exceeds the configured size
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptySpreadsheet is returned when a file lacks a header row and a data row
	ErrEmptySpreadsheet = errors.New("file must contain at least a header row and one data row")

	// ErrMissingHeaders is matched by MissingHeadersError
	ErrMissingHeaders = errors.New("missing required headers")

	// ErrInvalidCredentials is returned when username, password and role do not all match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a request carries no valid token
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the caller's role lacks a permission
	ErrForbidden = errors.New("permission denied")

	// ErrKeyNotFound is returned by a KVStore for an absent key
	ErrKeyNotFound = errors.New("key not found")

	// ErrStoreUnavailable is returned when the backing store cannot be reached
	ErrStoreUnavailable = errors.New("store unavailable")
)

// MissingHeadersError lists every required column absent from an import file
type MissingHeadersError struct {
	Fields []Field
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingHeaders.Error(), joinFields(e.Fields))
}

// Is lets errors.Is match ErrMissingHeaders
func (e *MissingHeadersError) Is(target error) bool {
	return target == ErrMissingHeaders
}
