package handlers

import (
	"context"
	"net/http"
	"time"

	"pickem/internal/models"
	"pickem/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser    models.PublicUser
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	refreshToken  string
	refreshErr    error
	parseID       service.Identity
	parseErr      error

	signUpCalls     int
	lastSignUp      map[string]any
	lastGenUsername string
	lastGenPassword string
	genCalls        int
	lastRefreshID   service.Identity
	lastParseToken  string
	parseCalls      int
}

func (m *mockAuth) SignUp(ctx context.Context, payload map[string]any) (models.PublicUser, error) {
	m.signUpCalls++
	m.lastSignUp = payload
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.genCalls++
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) Refresh(ctx context.Context, id service.Identity) (string, error) {
	m.lastRefreshID = id
	return m.refreshToken, m.refreshErr
}

func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.parseCalls++
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockUsers struct {
	all     []models.PublicUser
	allErr  error
	one     models.PublicUser
	oneErr  error
	lastGet string
}

func (m *mockUsers) ListAll(ctx context.Context) ([]models.PublicUser, error) {
	return m.all, m.allErr
}

func (m *mockUsers) GetByUsername(ctx context.Context, username string) (models.PublicUser, error) {
	m.lastGet = username
	return m.one, m.oneErr
}

type mockAuditLog struct {
	resp     []models.AuditEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	lastUser string
}

func (m *mockAuditLog) List(ctx context.Context, f service.LogFilter) ([]models.AuditEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastUser = f.Username
	return m.resp, m.err
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(ctx context.Context) error { return m.err }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, 0)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeaders(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
