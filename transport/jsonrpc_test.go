package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/homemesh/core"
)

func TestJSONRPCTransport_Call(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"result": map[string]any{
				"parts": []map[string]any{
					{"kind": "text", "text": "the lights "},
					{"kind": "data", "data": map[string]any{"ignored": true}},
					{"kind": "text", "text": "are on"},
				},
			},
		})
	}))
	defer server.Close()

	tr := NewJSONRPCTransport()
	result, err := tr.Call(context.Background(), server.URL, core.InvocationPayload{
		Text:     "turn on the lights",
		Metadata: map[string]any{core.MetadataContextID: "sess-42"},
	})

	require.NoError(t, err)
	assert.Equal(t, "the lights are on", result)

	assert.Equal(t, "2.0", captured.JSONRPC)
	assert.Equal(t, "message/send", captured.Method)
	msg := captured.Params.Message
	assert.Equal(t, "message", msg.Kind)
	assert.Equal(t, "user", msg.Role)
	assert.Equal(t, "sess-42", msg.ContextID)
	assert.NotEmpty(t, msg.MessageID)
	require.Len(t, msg.Parts, 1)
	assert.Equal(t, "turn on the lights", msg.Parts[0].Text)
}

func TestJSONRPCTransport_ContextPrependedToText(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  map[string]any{"parts": []map[string]any{{"kind": "text", "text": "ok"}}},
		})
	}))
	defer server.Close()

	tr := NewJSONRPCTransport()
	_, err := tr.Call(context.Background(), server.URL, core.InvocationPayload{
		Text:    "play music",
		Context: "lights dimmed",
	})

	require.NoError(t, err)
	require.Len(t, captured.Params.Message.Parts, 1)
	assert.Equal(t, "lights dimmed\n\nUser: play music", captured.Params.Message.Parts[0].Text)
}

func TestJSONRPCTransport_RPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]any{"code": -32000, "message": "agent exploded"},
		})
	}))
	defer server.Close()

	tr := NewJSONRPCTransport()
	_, err := tr.Call(context.Background(), server.URL, core.InvocationPayload{Text: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent exploded")
	assert.Contains(t, err.Error(), "-32000")
}

func TestJSONRPCTransport_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tr := NewJSONRPCTransport()
	_, err := tr.Call(context.Background(), server.URL, core.InvocationPayload{Text: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestJSONRPCTransport_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1})
	}))
	defer server.Close()

	tr := NewJSONRPCTransport()
	_, err := tr.Call(context.Background(), server.URL, core.InvocationPayload{Text: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither result nor error")
}

func TestJSONRPCTransport_CustomMethod(t *testing.T) {
	var captured rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  map[string]any{"parts": []map[string]any{{"kind": "text", "text": "ok"}}},
		})
	}))
	defer server.Close()

	tr := NewJSONRPCTransport(func(o *JSONRPCOptions) {
		o.Method = "message/stream"
	})
	_, err := tr.Call(context.Background(), server.URL, core.InvocationPayload{Text: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "message/stream", captured.Method)
}

func TestJSONRPCTransport_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	tr := NewJSONRPCTransport()
	_, err := tr.Call(context.Background(), server.URL, core.InvocationPayload{Text: "hello"})

	assert.Error(t, err)
}
