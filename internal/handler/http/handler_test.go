package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-keeper/internal/identity"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

const (
	testToken  = "good-token"
	testUserID = int64(7)
)

type handlerFixture struct {
	auth  *mock.MockAuthService
	oauth *mock.MockOAuthService
	tasks *mock.MockTaskService
	files *mock.MockFileService
	info  *mock.MockAppInfoService

	sessions store.SessionStore
	router   *chi.Mux
}

func newHandlerFixture(t *testing.T, rawBlobs RawBlobOpener) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &handlerFixture{
		auth:     mock.NewMockAuthService(ctrl),
		oauth:    mock.NewMockOAuthService(ctrl),
		tasks:    mock.NewMockTaskService(ctrl),
		files:    mock.NewMockFileService(ctrl),
		info:     mock.NewMockAppInfoService(ctrl),
		sessions: store.NewMemorySessionStore(),
	}

	services := &service.Services{
		AuthService:    f.auth,
		OAuthService:   f.oauth,
		TaskService:    f.tasks,
		FileService:    f.files,
		AppInfoService: f.info,
	}
	settings := Settings{ClientURL: "http://127.0.0.1:8765/"}

	f.router = NewHandler(services, f.sessions, rawBlobs, settings, logger.Nop()).Init()
	return f
}

// acceptToken makes testToken a valid bearer credential of testUserID.
func (f *handlerFixture) acceptToken() {
	f.auth.EXPECT().
		ParseCredential(gomock.Any(), testToken).
		Return(models.Identity{UserID: testUserID, Email: "ann@example.com", Name: "ann"}, nil).
		AnyTimes()
}

// boundSession stores a signed-in session and returns its id.
func (f *handlerFixture) boundSession(t *testing.T) string {
	t.Helper()
	session := models.Session{
		ID:        "sess-1",
		UserID:    testUserID,
		Email:     "ann@example.com",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, f.sessions.SaveSession(context.Background(), session))
	return session.ID
}

func (f *handlerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func newRequest(method, target string, body any) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func withSession(req *http.Request, sessionID string) *http.Request {
	req.AddCookie(&http.Cookie{Name: identity.SessionCookieName, Value: sessionID})
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rr.Code)
	assert.Equal(t, message, decodeBody[models.ErrorResponse](t, rr).Error)
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ─────────────────────────────────────────────
// Service endpoints
// ─────────────────────────────────────────────

func TestHealthz(t *testing.T) {
	f := newHandlerFixture(t, nil)

	rr := f.do(newRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestVersion(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.info.EXPECT().GetBuildInfo(gomock.Any()).Return(models.BuildInfoResponse{Version: "1.2.3", Date: "N/A", Commit: "abc"})

	rr := f.do(newRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", decodeBody[models.BuildInfoResponse](t, rr).Version)
}

func TestMetrics_CountsRoutePatterns(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.do(newRequest(http.MethodGet, "/healthz", nil))

	rr := f.do(newRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestTraceIDHeaderIsReturned(t *testing.T) {
	f := newHandlerFixture(t, nil)

	rr := f.do(newRequest(http.MethodGet, "/healthz", nil))

	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	f := newHandlerFixture(t, nil)

	rr := f.do(newRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
