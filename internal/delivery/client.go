package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second
	userAgent      = "webhook-scheduler/1.0"

	// Response bodies are snapshotted into the execution log; cap them so a
	// misbehaving target cannot bloat the log table.
	maxSnapshotBytes = 64 << 10
)

// Request describes one outbound delivery attempt.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    any
}

// Outcome is the normalized result of one attempt. A non-2xx response is a
// failed outcome, not an error: Client never returns transport failures as
// Go errors, it folds them into TransportError.
type Outcome struct {
	Succeeded      bool
	HTTPStatus     int
	ResponseBody   json.RawMessage
	TransportError string
}

type Client interface {
	Deliver(ctx context.Context, req Request) Outcome
}

type HTTPClient struct {
	http *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{http: &http.Client{Timeout: timeout}}
}

var _ Client = (*HTTPClient)(nil)

// Deliver performs a single HTTP exchange and normalizes whatever happened
// into an Outcome. It has no side effects beyond the network call.
func (c *HTTPClient) Deliver(ctx context.Context, req Request) Outcome {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	body, err := json.Marshal(req.Body)
	if err != nil {
		return Outcome{TransportError: fmt.Sprintf("encode payload: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bytes.NewReader(body))
	if err != nil {
		return Outcome{TransportError: fmt.Sprintf("build request: %v", err)}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Outcome{TransportError: err.Error()}
	}
	defer resp.Body.Close()

	snapshot, _ := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))

	return Outcome{
		Succeeded:    resp.StatusCode >= 200 && resp.StatusCode < 300,
		HTTPStatus:   resp.StatusCode,
		ResponseBody: snapshotJSON(snapshot),
	}
}

// snapshotJSON keeps valid JSON bodies as-is and wraps everything else as a
// JSON string so the snapshot column always holds valid JSON.
func snapshotJSON(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return json.RawMessage(quoted)
}
