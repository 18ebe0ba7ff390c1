//nolint:testpackage // Testing internal client requires same package access
package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edupulse/riskcore/internal/domain"
)

func TestClient_Generate_Success(t *testing.T) {
	t.Helper()

	var received GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("path: got %s, want /generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  You are not alone.  "})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, nil)

	text, err := client.Generate(context.Background(), &GenerateRequest{
		Category:  "general_support",
		StudentID: "STU-001",
		Message:   "hello",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "You are not alone." {
		t.Errorf("completion should be trimmed, got %q", text)
	}
	if received.StudentID != "STU-001" {
		t.Errorf("request student id: got %s", received.StudentID)
	}
}

func TestClient_Generate_Failures(t *testing.T) {
	t.Helper()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "empty completion",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"text": "   "})
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := New(Config{BaseURL: server.URL}, nil)

			_, err := client.Generate(context.Background(), &GenerateRequest{Message: "hi"})
			if !errors.Is(err, domain.ErrBackendUnavailable) {
				t.Errorf("expected ErrBackendUnavailable, got %v", err)
			}
		})
	}
}

func TestClient_Generate_Timeout(t *testing.T) {
	t.Helper()

	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		// The body must be consumed for the server to notice the
		// client hanging up; only then does the request context end.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil)

	_, err := client.Generate(context.Background(), &GenerateRequest{Message: "hi"})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable on timeout, got %v", err)
	}
	<-started
}

func TestClient_Disabled(t *testing.T) {
	t.Helper()

	client := New(Config{}, nil)

	if client.Enabled() {
		t.Error("client without a base URL must report disabled")
	}

	_, err := client.Generate(context.Background(), &GenerateRequest{Message: "hi"})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}

	if err := client.Health(context.Background()); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable from Health, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	t.Helper()

	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"healthy", http.StatusOK, false},
		{"unhealthy", http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("path: got %s, want /health", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := New(Config{BaseURL: server.URL}, nil)

			err := client.Health(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Health error: got %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
