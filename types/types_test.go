package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAskParams_Validate(t *testing.T) {
	params := &AskParams{}
	errs := Validate(params)
	assert.Contains(t, errs, "Question")

	limit := -1
	params = &AskParams{Question: "q", Limit: &limit}
	errs = Validate(params)
	assert.Contains(t, errs, "Limit")

	limit = 0
	params = &AskParams{Question: "q", Limit: &limit}
	assert.Nil(t, Validate(params))

	params = &AskParams{Question: "q"}
	assert.Nil(t, Validate(params))
}

func TestIsRetryable(t *testing.T) {
	transient := NewProviderError("embed", ProviderTransient, errors.New("503"))
	assert.True(t, IsRetryable(transient))

	permanent := NewProviderError("embed", ProviderPermanent, errors.New("401"))
	assert.False(t, IsRetryable(permanent))

	invalid := NewProviderError("embed", ProviderInvalidInput, errors.New("empty"))
	assert.False(t, IsRetryable(invalid))

	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(&StoreError{Op: "insert", Err: errors.New("down")}))
}

func TestErrorUnwrapping(t *testing.T) {
	inner := errors.New("root cause")

	var err error = &ExtractionError{Path: "a.pdf", Err: inner}
	assert.ErrorIs(t, err, inner)

	err = &StoreError{Op: "search", Err: inner}
	assert.ErrorIs(t, err, inner)

	err = NewProviderError("complete", ProviderTransient, inner)
	assert.ErrorIs(t, err, inner)
}
