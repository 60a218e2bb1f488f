package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/pos_posting_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapsToSentinel(t *testing.T) {
	err := apperrors.NewNotFoundError("loan not found")
	wrapped := fmt.Errorf("service: %w", err)

	assert.True(t, errors.Is(wrapped, apperrors.ErrNotFound))
	assert.Equal(t, "loan not found: resource not found", err.Error())

	var appErr *apperrors.AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestAppError_NilCause(t *testing.T) {
	err := apperrors.NewAppError(http.StatusInternalServerError, "boom", nil)
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestNewValidationError(t *testing.T) {
	err := apperrors.NewValidationError("amount must be positive")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}
