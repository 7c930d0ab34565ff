package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pickem/internal/service"

	"github.com/gin-gonic/gin"
)

const unauthorizedBody = `{"code":401,"message":"Unauthorized"}`

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, 0)
	r.GET("/secure", h.authGuard, func(c *gin.Context) {
		id, _ := identityFrom(c)
		c.JSON(http.StatusOK, gin.H{"ok": true, "username": id.Username})
	})
	return r, h
}

func TestAuthGuard_Rejections(t *testing.T) {
	cases := []struct {
		name        string
		header      string
		parseErr    error
		wantParsing bool
	}{
		{name: "missing header"},
		{name: "invalid scheme", header: "Token abc"},
		{name: "bearer without token", header: "Bearer"},
		{name: "bearer with blank token", header: "Bearer   "},
		{name: "token with inner space", header: "Bearer a b"},
		{name: "expired token", header: "Bearer expired", parseErr: service.NewUnauthorized(service.ErrTokenExpired), wantParsing: true},
		{name: "wrong secret", header: "Bearer forged", parseErr: service.NewUnauthorized(service.ErrTokenSignature), wantParsing: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseErr: tc.parseErr}
			r, h := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			if w.Body.String() != unauthorizedBody {
				t.Fatalf("body: got %s, want %s", w.Body.String(), unauthorizedBody)
			}
			if got := auth.parseCalls > 0; got != tc.wantParsing {
				t.Fatalf("ParseToken called=%v, want %v", got, tc.wantParsing)
			}
			if !strings.Contains(scrapeMetrics(t, h), "pickem_auth_rejections_total 1") {
				t.Fatalf("rejection not counted")
			}
		})
	}
}

func TestAuthGuard_SuccessStoresIdentity(t *testing.T) {
	for _, header := range []string{"Bearer good-token", "bearer good-token", "BEARER  good-token"} {
		t.Run(header, func(t *testing.T) {
			auth := &mockAuth{parseID: service.Identity{Username: "alice", Name: "Alice"}}
			r, _ := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			req.Header.Set("authorization", header)
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
			}
			if w.Body.String() != `{"ok":true,"username":"alice"}` {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
			if auth.lastParseToken != "good-token" {
				t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, "good-token")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(&service.Service{Health: &mockHealth{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Header().Get(headerRequestID) == "" {
		t.Fatalf("expected generated %s", headerRequestID)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(headerRequestID); got != "abc-123" {
		t.Fatalf("request id: got %q, want %q", got, "abc-123")
	}
}

func scrapeMetrics(t *testing.T, h *Handler) string {
	t.Helper()
	w := httptest.NewRecorder()
	h.metrics.handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", w.Code)
	}
	return w.Body.String()
}
