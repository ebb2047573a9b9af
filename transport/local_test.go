package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/homemesh/core"
)

func TestLocalTransport_Call(t *testing.T) {
	lt := NewLocalTransport()
	lt.Register("local:light-agent", func(ctx context.Context, payload core.InvocationPayload) (string, error) {
		return "handled: " + payload.Text, nil
	})

	result, err := lt.Call(context.Background(), "local:light-agent", core.InvocationPayload{Text: "lights on"})

	require.NoError(t, err)
	assert.Equal(t, "handled: lights on", result)
}

func TestLocalTransport_UnknownEndpoint(t *testing.T) {
	lt := NewLocalTransport()

	_, err := lt.Call(context.Background(), "local:missing", core.InvocationPayload{Text: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "local:missing")
}

func TestLocalTransport_HandlerError(t *testing.T) {
	lt := NewLocalTransport()
	fault := errors.New("device offline")
	lt.Register("local:light-agent", func(ctx context.Context, payload core.InvocationPayload) (string, error) {
		return "", fault
	})

	_, err := lt.Call(context.Background(), "local:light-agent", core.InvocationPayload{Text: "lights on"})

	assert.ErrorIs(t, err, fault)
}

func TestLocalTransport_ReplaceHandler(t *testing.T) {
	lt := NewLocalTransport()
	lt.Register("local:light-agent", func(ctx context.Context, payload core.InvocationPayload) (string, error) {
		return "old", nil
	})
	lt.Register("local:light-agent", func(ctx context.Context, payload core.InvocationPayload) (string, error) {
		return "new", nil
	})

	result, err := lt.Call(context.Background(), "local:light-agent", core.InvocationPayload{Text: "lights on"})

	require.NoError(t, err)
	assert.Equal(t, "new", result)
}

func TestLocalTransport_HonorsCancellation(t *testing.T) {
	lt := NewLocalTransport()
	// The handler ignores its context entirely; Call must still return once
	// the caller gives up.
	lt.Register("local:stuck-agent", func(ctx context.Context, payload core.InvocationPayload) (string, error) {
		time.Sleep(time.Second)
		return "too late", nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := lt.Call(ctx, "local:stuck-agent", core.InvocationPayload{Text: "hello"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
