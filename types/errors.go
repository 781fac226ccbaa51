package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a delete or lookup matches no rows.
	ErrNotFound = errors.New("not found")

	// ErrEmptyDocument is returned when a source file yields no text after
	// trimming whitespace. It is raised before any embedding call is made.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)

// ProviderErrorKind classifies a failure of the embedding or completion API.
// The retry policy re-attempts only transient failures.
type ProviderErrorKind int

const (
	ProviderTransient    ProviderErrorKind = iota // network, timeout, 429, 5xx
	ProviderPermanent                             // auth, bad model, other 4xx
	ProviderInvalidInput                          // rejected before any request was sent
)

func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderTransient:
		return "transient"
	case ProviderPermanent:
		return "permanent"
	case ProviderInvalidInput:
		return "invalid input"
	}
	return "unknown"
}

// ProviderError is a failure of a remote inference call.
type ProviderError struct {
	Op   string
	Kind ProviderErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s provider error: %v", e.Op, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func NewProviderError(op string, kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Op: op, Kind: kind, Err: err}
}

// ExtractionError is a failure to turn a source file into plain text.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StoreError is a database-layer failure during init, insert, query or delete.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is worth another attempt. Only transient
// provider failures qualify; everything else surfaces immediately.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind == ProviderTransient
	}
	return false
}
