package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NewGigNotFoundError("g1")))
	assert.False(t, IsNotFound(NewInvalidGigIDError("g1")))

	assert.True(t, IsInvalidID(NewInvalidGigIDError("abc")))
	assert.False(t, IsInvalidID(NewGigNotFoundError("abc")))

	assert.True(t, IsRetryable(NewCatalogUnavailableError(assert.AnError)))
	assert.True(t, IsRetryable(NewCacheUnavailableError(assert.AnError)))
	assert.False(t, IsRetryable(NewGigNotFoundError("g1")))
	assert.False(t, IsRetryable(assert.AnError))
}

func TestClassificationSeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("incrementing clicks: %w", NewGigNotFoundError("g1"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsRetryable(wrapped))
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewGigNotFoundError("g1"), http.StatusNotFound},
		{NewInvalidGigIDError("x"), http.StatusBadRequest},
		{NewRecordMalformedError("g1", "missing title"), http.StatusBadRequest},
		{NewSnapshotInvalidError("rating out of range"), http.StatusBadRequest},
		{NewCatalogUnavailableError(assert.AnError), http.StatusServiceUnavailable},
		{NewCacheUnavailableError(assert.AnError), http.StatusServiceUnavailable},
		{NewVocabularyLoadError("configs/vocabulary.yaml", assert.AnError), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), "for %v", tc.err)
	}
}

func TestErrorStringCarriesCode(t *testing.T) {
	err := NewGigNotFoundError("g1")
	assert.Contains(t, err.Error(), "GIG_NOT_FOUND")
}
