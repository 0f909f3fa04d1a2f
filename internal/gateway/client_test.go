package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClient_Whitelist(t *testing.T) {
	tests := []struct {
		name     string
		proto    string
		status   int
		wantBody map[string]string
		wantErr  error
		result   string
	}{
		{
			name:     "success without proto",
			status:   http.StatusOK,
			wantBody: map[string]string{"ip": "203.0.113.7"},
			result:   "success",
		},
		{
			name:     "success with proto",
			proto:    "udp",
			status:   http.StatusOK,
			wantBody: map[string]string{"ip": "203.0.113.7", "proto": "udp"},
			result:   "success",
		},
		{
			name:     "non-200 is a failure",
			status:   http.StatusCreated,
			wantBody: map[string]string{"ip": "203.0.113.7"},
			wantErr:  ErrRejected,
			result:   "rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decode body: %v", err)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			attempts := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "attempts"}, []string{"result"})
			c := NewClient(srv.URL, attempts)

			err := c.Whitelist(context.Background(), "203.0.113.7", tt.proto)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Whitelist() error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.wantBody, got); diff != "" {
				t.Errorf("request body mismatch (-want +got):\n%s", diff)
			}
			if n := testutil.ToFloat64(attempts.WithLabelValues(tt.result)); n != 1 {
				t.Errorf("attempts{result=%q} = %v, want 1", tt.result, n)
			}
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil)
	err := c.Whitelist(context.Background(), "203.0.113.7", "")
	if err == nil {
		t.Fatal("Whitelist() error = nil, want transport error")
	}
	if errors.Is(err, ErrRejected) {
		t.Errorf("Whitelist() error = %v, want transport error", err)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("", nil)
	if c.Configured() {
		t.Error("Configured() = true for empty URL")
	}
	if err := c.Whitelist(context.Background(), "203.0.113.7", ""); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Whitelist() error = %v, want ErrNotConfigured", err)
	}
}
