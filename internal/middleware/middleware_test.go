package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playmo/smartdns-api/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = RequestID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("minted request id %q is not a uuid", seen)
	}
	if got := w.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}

	inbound := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, inbound)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if seen != inbound {
		t.Errorf("request id = %q, want inbound %q", seen, inbound)
	}
}

func TestCallerAddressMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		xff        string
		want       string
	}{
		{
			name:       "direct public caller",
			remoteAddr: "1.1.1.1:51000",
			want:       "1.1.1.1",
		},
		{
			name:       "forwarded header ignored without trust",
			remoteAddr: "1.1.1.1:51000",
			xff:        "8.8.8.8",
			want:       "1.1.1.1",
		},
		{
			name:       "loopback proxy forwards caller",
			trustProxy: true,
			remoteAddr: "127.0.0.1:40000",
			xff:        "8.8.8.8",
			want:       "8.8.8.8",
		},
		{
			name:       "loopback without proxy falls back to remote ip",
			remoteAddr: "127.0.0.1:40000",
			want:       "127.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewCallerExtractor(tt.trustProxy, nil)
			if err != nil {
				t.Fatalf("NewCallerExtractor() error = %v", err)
			}

			r := gin.New()
			r.Use(CallerAddressMiddleware(extractor))
			var got string
			r.GET("/", func(c *gin.Context) {
				got = CallerIP(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("CallerIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireStore(t *testing.T) {
	for name, tc := range map[string]struct {
		store store.Store
		want  int
	}{
		"available":   {store.NewMemoryStore(), http.StatusNoContent},
		"unavailable": {store.Unavailable(), http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequireStore(tc.store))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
