package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultURL is the fixed local endpoint the AnkiConnect add-on listens on.
	DefaultURL = "http://localhost:8765"

	defaultTimeout    = 5 * time.Second
	defaultRetryDelay = 1 * time.Second
	defaultMaxRetries = 2

	// protocolVersion is the AnkiConnect wire protocol version we speak.
	protocolVersion = 6
)

// Client performs JSON-over-HTTP calls against a local AnkiConnect endpoint
// with a per-attempt timeout and a bounded retry loop for transport failures.
// It is stateless between calls.
type Client struct {
	URL        string
	Timeout    time.Duration
	RetryDelay time.Duration
	MaxRetries int

	httpClient *http.Client
}

// NewClient creates a client for the given endpoint URL. An empty url means
// the default local endpoint.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:        url,
		Timeout:    defaultTimeout,
		RetryDelay: defaultRetryDelay,
		MaxRetries: defaultMaxRetries,
		httpClient: &http.Client{},
	}
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Invoke performs one logical AnkiConnect call. A response carrying a
// non-null error field fails immediately with a *RemoteError. Transport
// failures (timeout, refused connection, malformed response) are retried
// up to MaxRetries additional times with RetryDelay between attempts, then
// surface as a *TransportError wrapping the last failure. On success the
// result payload is decoded into result, which may be nil for actions that
// return nothing.
func (c *Client) Invoke(ctx context.Context, action string, params, result any) error {
	attempts := c.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.RetryDelay):
			case <-ctx.Done():
				return &TransportError{Action: action, Attempts: attempt, Err: ctx.Err()}
			}
		}

		err := c.invokeOnce(ctx, action, params, result)
		if err == nil {
			return nil
		}
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			// The service understood and rejected the request, retrying
			// cannot change the outcome.
			return err
		}
		lastErr = err
	}

	return &TransportError{Action: action, Attempts: attempts, Err: lastErr}
}

func (c *Client) invokeOnce(ctx context.Context, action string, params, result any) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	body, err := json.Marshal(request{Action: action, Version: protocolVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("malformed response for %s: %w", action, err)
	}

	if decoded.Error != nil {
		return &RemoteError{Action: action, Message: *decoded.Error}
	}

	if result != nil {
		if err := json.Unmarshal(decoded.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", action, err)
		}
	}
	return nil
}

// CheckAvailability performs a single bare version call without retries.
// A timeout raises *UnavailableError with remediation steps; any other
// failure is reported as a generic connectivity error.
func (c *Client) CheckAvailability(ctx context.Context) error {
	err := c.invokeOnce(ctx, "version", nil, nil)
	if err == nil {
		return nil
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &UnavailableError{Err: err}
	}
	return fmt.Errorf("failed to connect to AnkiConnect: %w", err)
}
