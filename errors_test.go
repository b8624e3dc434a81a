package reporter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeErrorWrapping(t *testing.T) {
	cause := errors.New("config file missing")
	err := NewRuntimeError(cause)

	assert.True(t, IsRuntimeError(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "config file missing")

	wrapped := fmt.Errorf("startup: %w", err)
	assert.True(t, IsRuntimeError(wrapped))
}

func TestTestFailureError(t *testing.T) {
	err := NewTestFailureError(2, 1)

	assert.True(t, IsTestFailureError(err))
	assert.False(t, IsRuntimeError(err))
	assert.Contains(t, err.Error(), "2 failed")
	assert.Contains(t, err.Error(), "1 errored")
}

func TestIsCheckersRejectPlainErrors(t *testing.T) {
	plain := errors.New("plain")
	assert.False(t, IsRuntimeError(plain))
	assert.False(t, IsTestFailureError(plain))
	assert.False(t, IsRuntimeError(nil))
	assert.False(t, IsTestFailureError(nil))
}
