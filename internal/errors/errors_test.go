package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "product with id 7 not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("product not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "product not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	details := []ValidationDetail{
		{Field: "price", Message: "price must be greater than zero"},
		{Field: "quantity", Message: "quantity must not be negative"},
	}

	err := NewValidationError("validation failed", details...)

	assert.Equal(t, "validation failed", err.Message)
	assert.Equal(t, "validation failed", err.Error())
	assert.Len(t, err.Details, 2)
	assert.Equal(t, "price", err.Details[0].Field)
}

func TestValidationError_IsValidationError(t *testing.T) {
	var err error = NewValidationError("invalid sold quantity")

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid sold quantity", ve.Message)

	_, ok = IsValidationError(NewNotFoundError("nope"))
	assert.False(t, ok)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError("failed to save products", cause)

	assert.Equal(t, "failed to save products", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "failed to save products: disk full", err.Error())
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := fmt.Errorf("exporting report: %w", NewInternalError("wrapper", cause))

	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
