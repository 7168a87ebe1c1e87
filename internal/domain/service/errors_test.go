package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteError(t *testing.T) {
	err := &RemoteError{StatusCode: 500, Message: "model unavailable"}

	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model unavailable")
	assert.True(t, IsRemoteError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsTransportError(err))
}

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "send request", Err: cause}

	assert.Equal(t, "send request: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsRemoteError(err))
}

func TestRequestIDContext(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
}
