package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", NewValidationError("text required", nil))
		domainErr := ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
		assert.True(t, IsValidation(err))
	})

	t.Run("deadline exceeded maps to timeout", func(t *testing.T) {
		domainErr := ToDomainError(fmt.Errorf("wait: %w", context.DeadlineExceeded))
		assert.Equal(t, http.StatusGatewayTimeout, domainErr.HTTPStatus)
	})

	t.Run("unknown errors are internal", func(t *testing.T) {
		cause := errors.New("boom")
		domainErr := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
		assert.ErrorIs(t, domainErr, cause)
		assert.False(t, IsValidation(cause))
	})
}

func TestNotFoundAndConflict(t *testing.T) {
	notFound := ToDomainError(NewNotFound("ticket", map[string]any{"id": "TKT-1"}))
	assert.Equal(t, "ticket not found", notFound.Message)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)
	assert.Equal(t, "TKT-1", notFound.Details["id"])

	conflict := ToDomainError(NewConflict("BUSY", "busy", nil))
	assert.Equal(t, "BUSY", conflict.Code)
	assert.Equal(t, http.StatusConflict, conflict.HTTPStatus)
}
