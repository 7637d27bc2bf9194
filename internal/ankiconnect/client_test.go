package ankiconnect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient points a client at the given server with short timings so
// retry tests finish quickly.
func newTestClient(url string) *Client {
	c := NewClient(url)
	c.Timeout = 100 * time.Millisecond
	c.RetryDelay = 10 * time.Millisecond
	return c
}

func TestInvokeSendsEnvelope(t *testing.T) {
	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"result": 6, "error": null}`))
	}))
	defer server.Close()

	var result int
	if err := newTestClient(server.URL).Invoke(context.Background(), "version", nil, &result); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if got.Action != "version" {
		t.Errorf("action = %q, want %q", got.Action, "version")
	}
	if got.Version != 6 {
		t.Errorf("version = %d, want 6", got.Version)
	}
	if result != 6 {
		t.Errorf("result = %d, want 6", result)
	}
}

func TestInvokeRemoteErrorNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"result": null, "error": "deck was not found: Missing"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Invoke(context.Background(), "findNotes", nil, nil)

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Invoke() error = %v, want *RemoteError", err)
	}
	if remoteErr.Message != "deck was not found: Missing" {
		t.Errorf("message = %q, want the service's error text", remoteErr.Message)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (remote errors must not be retried)", attempts)
	}
}

func TestInvokeRetriesTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "timeout on every attempt",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(300 * time.Millisecond)
			},
		},
		{
			name: "malformed response on every attempt",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts++
				tt.handler(w, r)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			err := client.Invoke(context.Background(), "deckNames", nil, nil)

			var transportErr *TransportError
			if !errors.As(err, &transportErr) {
				t.Fatalf("Invoke() error = %v, want *TransportError", err)
			}
			want := client.MaxRetries + 1
			if attempts != want {
				t.Errorf("attempts = %d, want %d", attempts, want)
			}
			if transportErr.Attempts != want {
				t.Errorf("reported attempts = %d, want %d", transportErr.Attempts, want)
			}
		})
	}
}

func TestInvokeRetryTiming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	start := time.Now()
	err := client.Invoke(context.Background(), "deckNames", nil, nil)
	elapsed := time.Since(start)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Invoke() error = %v, want *TransportError", err)
	}

	// Every attempt runs to its timeout, with the retry delay between
	// attempts: attempts*timeout + retries*delay.
	attempts := time.Duration(client.MaxRetries + 1)
	min := attempts*client.Timeout + time.Duration(client.MaxRetries)*client.RetryDelay
	if elapsed < min {
		t.Errorf("elapsed = %v, want at least %v", elapsed, min)
	}
	if elapsed > min+500*time.Millisecond {
		t.Errorf("elapsed = %v, want approximately %v", elapsed, min)
	}
}

func TestInvokeRecoversAfterTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Write([]byte("garbage"))
			return
		}
		w.Write([]byte(`{"result": ["Korean"], "error": null}`))
	}))
	defer server.Close()

	var decks []string
	if err := newTestClient(server.URL).Invoke(context.Background(), "deckNames", nil, &decks); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(decks) != 1 || decks[0] != "Korean" {
		t.Errorf("decks = %v, want [Korean]", decks)
	}
}

func TestInvokeTransportErrorCarriesLastFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("garbage"))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Invoke(context.Background(), "deckNames", nil, nil)
	if err == nil {
		t.Fatal("Invoke() error = nil, want transport error")
	}
	if !strings.Contains(err.Error(), "malformed response") {
		t.Errorf("error = %q, want it to carry the last underlying failure", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result": 6, "error": null}`))
		}))
		defer server.Close()

		if err := newTestClient(server.URL).CheckAvailability(context.Background()); err != nil {
			t.Errorf("CheckAvailability() error = %v", err)
		}
	})

	t.Run("timeout yields unavailable with remediation", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			time.Sleep(300 * time.Millisecond)
		}))
		defer server.Close()

		err := newTestClient(server.URL).CheckAvailability(context.Background())

		var unavailable *UnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("CheckAvailability() error = %v, want *UnavailableError", err)
		}
		if !strings.Contains(err.Error(), "Anki is running") {
			t.Errorf("error = %q, want remediation steps", err)
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1 (availability check must not retry)", attempts)
		}
	})

	t.Run("connection refused yields generic error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // Refuse all connections.

		err := newTestClient(server.URL).CheckAvailability(context.Background())
		if err == nil {
			t.Fatal("CheckAvailability() error = nil, want connectivity error")
		}
		var unavailable *UnavailableError
		if errors.As(err, &unavailable) {
			t.Errorf("error = %v, want a generic error, not *UnavailableError", err)
		}
		if !strings.Contains(err.Error(), "failed to connect to AnkiConnect") {
			t.Errorf("error = %q, want generic connectivity message", err)
		}
	})
}
