package internal_test

import (
	"errors"
	"fmt"
	"testing"

	"exchange-rates/internal"

	"github.com/stretchr/testify/assert"
)

func TestFetchFailed_WrapsBadResponse(t *testing.T) {
	err := internal.FetchFailed(internal.BadResponse(404, "not found"))

	assert.True(t, errors.Is(err, internal.ErrFetchFailed))
	assert.True(t, errors.Is(err, internal.ErrBadResponse))
	assert.False(t, errors.Is(err, internal.ErrInvalidCurrency))

	var bad *internal.Error
	assert.True(t, errors.As(err.Err, &bad))
	assert.Equal(t, 404, bad.Status)
	assert.Contains(t, err.Error(), "http 404")
	assert.Contains(t, err.Error(), "not found")
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, internal.IsValidationError(internal.InvalidArgument("x")))
	assert.True(t, internal.IsValidationError(fmt.Errorf("wrapped: %w", internal.ErrInvalidDateOrder)))
	assert.False(t, internal.IsValidationError(internal.FetchFailed(errors.New("boom"))))
	assert.False(t, internal.IsValidationError(errors.New("plain")))
}
