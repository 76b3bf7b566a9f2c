package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		base := NewValidationError("title required", map[string]any{"field": "title"})
		got := ToDomainError(fmt.Errorf("create: %w", base))
		require.NotNil(t, got)
		assert.Equal(t, "VALIDATION_FAILED", got.Code)
		assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
		assert.Equal(t, "title", got.Details["field"])
	})

	t.Run("fiber errors keep their status", func(t *testing.T) {
		got := ToDomainError(fiber.ErrNotFound)
		assert.Equal(t, "NOT_FOUND", got.Code)
		assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		cause := errors.New("boom")
		got := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
		assert.ErrorIs(t, got, cause)
	})
}

func TestNewConfirmationRequired(t *testing.T) {
	err := NewConfirmationRequired("sure?", map[string]any{"token": "abc"})
	de := ToDomainError(err)
	assert.Equal(t, http.StatusPreconditionRequired, de.HTTPStatus)
	assert.Equal(t, "sure?", de.Error())
	assert.Equal(t, "abc", de.Details["token"])
}
