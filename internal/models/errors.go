package models

import (
	"errors"
	"fmt"
	"strings"
)

// Custom errors
var (
	ErrInsufficientData = errors.New("no trainable games before cutoff date")
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key violation")
)

// SchemaError indicates a table is missing required columns. It is fatal
// for the run; persisted state is left untouched.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s is missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// NewSchemaError creates a new schema error
func NewSchemaError(table string, missing ...string) *SchemaError {
	return &SchemaError{Table: table, Missing: missing}
}

// SourceError indicates a single external-source request failed. The
// ingestion layer logs it, records the skipped unit and continues.
type SourceError struct {
	Source  string
	Code    string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Common source error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

// NewSourceError creates a new source error
func NewSourceError(source, code, message string, err error) *SourceError {
	return &SourceError{Source: source, Code: code, Message: message, Err: err}
}
