package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/internal/util"
)

// JSONRPCTransport reaches remote agents over HTTP using a JSON-RPC 2.0
// message/send envelope. The endpoint in the agent descriptor is the full
// URL of the agent's JSON-RPC handler.
//
// The payload text is sent as a single text part; when the payload carries
// sequential-mode context it is prepended to the message the same way a
// system prompt precedes the user utterance.
type JSONRPCTransport struct {
	client *http.Client
	opts   JSONRPCOptions
}

// JSONRPCOptions configure the JSON-RPC transport.
type JSONRPCOptions struct {
	// HTTPClient overrides the default http.Client. Timeouts are driven by
	// the caller's context, not the client.
	HTTPClient *http.Client

	// Method is the JSON-RPC method name for sending a message.
	Method string
}

// NewJSONRPCTransport constructs a JSON-RPC transport with optional overrides.
func NewJSONRPCTransport(optFns ...func(o *JSONRPCOptions)) *JSONRPCTransport {
	opts := JSONRPCOptions{
		HTTPClient: &http.Client{},
		Method:     "message/send",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &JSONRPCTransport{client: opts.HTTPClient, opts: opts}
}

type rpcPart struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type rpcMessage struct {
	Kind      string    `json:"kind"`
	Role      string    `json:"role"`
	Parts     []rpcPart `json:"parts"`
	MessageID string    `json:"messageId"`
	ContextID string    `json:"contextId,omitempty"`
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int       `json:"id"`
}

type rpcParams struct {
	Message rpcMessage `json:"message"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result *rpcResult `json:"result"`
	Error  *rpcError  `json:"error"`
}

type rpcResult struct {
	Parts []rpcPart `json:"parts"`
}

// Call implements core.Transport.
func (t *JSONRPCTransport) Call(ctx context.Context, endpoint string, payload core.InvocationPayload) (string, error) {
	text := payload.Text
	if payload.Context != "" {
		text = fmt.Sprintf("%s\n\nUser: %s", payload.Context, payload.Text)
	}

	message := rpcMessage{
		Kind:      "message",
		Role:      "user",
		Parts:     []rpcPart{{Kind: "text", Text: text}},
		MessageID: util.NewID(),
	}
	if contextID, ok := payload.Metadata[core.MetadataContextID].(string); ok {
		message.ContextID = contextID
	}

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  t.opts.Method,
		Params:  rpcParams{Message: message},
		ID:      1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("agent request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("agent returned status %d: %s", resp.StatusCode, snippet)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return "", fmt.Errorf("agent error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if rpcResp.Result == nil {
		return "", fmt.Errorf("response carried neither result nor error")
	}

	var sb strings.Builder
	for _, part := range rpcResp.Result.Parts {
		if part.Kind == "text" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
