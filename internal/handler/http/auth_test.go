package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-keeper/internal/identity"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/models"
)

func signedToken(value string, expires time.Time) models.Token {
	return models.Token{
		SignedString: value,
		Claims: models.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
		},
	}
}

// ── Register / Login ─────────────────────────────────────────

func TestRegister_Created(t *testing.T) {
	f := newHandlerFixture(t, nil)
	req := models.RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: "Ann"}
	user := models.User{ID: 1, Email: "ann@example.com", Name: "Ann"}

	f.auth.EXPECT().Register(gomock.Any(), req).Return(user, signedToken("jwt", time.Now().Add(time.Hour)), nil)

	rr := f.do(newRequest(http.MethodPost, "/auth/register", req))

	assert.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeBody[models.AuthResponse](t, rr)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, user, resp.User)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "duplicate email",
			err:        service.ErrDuplicateEmail,
			wantStatus: http.StatusBadRequest,
			wantMsg:    service.ErrDuplicateEmail.Error(),
		},
		{
			name:       "validation",
			err:        fmt.Errorf("%w: password is too short", service.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "validation error: password is too short",
		},
		{
			name:       "unexpected error is hidden",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, nil)
			f.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, tt.err)

			rr := f.do(newRequest(http.MethodPost, "/auth/register", models.RegisterRequest{Email: "a@b.c"}))

			assertError(t, rr, tt.wantStatus, tt.wantMsg)
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	f := newHandlerFixture(t, nil)

	rr := f.do(newRequest(http.MethodPost, "/auth/register", "{"))

	assertError(t, rr, http.StatusBadRequest, "invalid data provided")
}

func TestLogin(t *testing.T) {
	f := newHandlerFixture(t, nil)
	req := models.LoginRequest{Email: "ann@example.com", Password: "secret1"}
	f.auth.EXPECT().Login(gomock.Any(), req).Return(models.User{ID: 1}, signedToken("jwt", time.Now().Add(time.Hour)), nil)

	rr := f.do(newRequest(http.MethodPost, "/auth/login", req))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "jwt", decodeBody[models.AuthResponse](t, rr).Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, service.ErrInvalidCredentials)

	rr := f.do(newRequest(http.MethodPost, "/auth/login", models.LoginRequest{Email: "x@y.z", Password: "nope"}))

	assertError(t, rr, http.StatusBadRequest, service.ErrInvalidCredentials.Error())
}

// ── Identity resolution ──────────────────────────────────────

func TestMe_IdentitySources(t *testing.T) {
	user := models.User{ID: testUserID, Email: "ann@example.com"}

	t.Run("bearer token", func(t *testing.T) {
		f := newHandlerFixture(t, nil)
		f.acceptToken()
		f.auth.EXPECT().Me(gomock.Any(), testUserID).Return(user, nil)

		rr := f.do(withBearer(newRequest(http.MethodGet, "/auth/me", nil), testToken))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, user, decodeBody[models.MeResponse](t, rr).User)
	})

	t.Run("session cookie", func(t *testing.T) {
		f := newHandlerFixture(t, nil)
		sessionID := f.boundSession(t)
		f.auth.EXPECT().Me(gomock.Any(), testUserID).Return(user, nil)

		rr := f.do(withSession(newRequest(http.MethodGet, "/auth/me", nil), sessionID))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("no credentials", func(t *testing.T) {
		f := newHandlerFixture(t, nil)

		rr := f.do(newRequest(http.MethodGet, "/auth/me", nil))

		assertError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("invalid bearer does not fall back to session", func(t *testing.T) {
		f := newHandlerFixture(t, nil)
		sessionID := f.boundSession(t)
		f.auth.EXPECT().ParseCredential(gomock.Any(), "bad").Return(models.Identity{}, service.ErrUnauthorized)

		req := withSession(withBearer(newRequest(http.MethodGet, "/auth/me", nil), "bad"), sessionID)
		rr := f.do(req)

		assertError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newHandlerFixture(t, nil)

		rr := f.do(withSession(newRequest(http.MethodGet, "/auth/me", nil), "missing"))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("user deleted after token was issued", func(t *testing.T) {
		f := newHandlerFixture(t, nil)
		f.acceptToken()
		f.auth.EXPECT().Me(gomock.Any(), testUserID).Return(models.User{}, service.ErrUnauthorized)

		rr := f.do(withBearer(newRequest(http.MethodGet, "/auth/me", nil), testToken))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

// ── Google sign-in ───────────────────────────────────────────

func TestBeginGoogleLogin(t *testing.T) {
	f := newHandlerFixture(t, nil)
	expires := time.Now().Add(10 * time.Minute)
	f.oauth.EXPECT().BeginLogin(gomock.Any()).
		Return("https://accounts.google.com/o/oauth2/auth?state=st", models.Session{ID: "sess-9", ExpiresAt: expires}, nil)

	rr := f.do(newRequest(http.MethodGet, "/auth/google", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=st", rr.Header().Get("Location"))

	cookie := findCookie(rr, identity.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "sess-9", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestBeginGoogleLogin_Disabled(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.oauth.EXPECT().BeginLogin(gomock.Any()).Return("", models.Session{}, service.ErrOAuthDisabled)

	rr := f.do(newRequest(http.MethodGet, "/auth/google", nil))

	assertError(t, rr, http.StatusInternalServerError, "internal server error")
}

func TestCompleteGoogleLogin_RedirectsWithToken(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.oauth.EXPECT().CompleteLogin(gomock.Any(), "sess-9", "st", "code-1").
		Return(models.User{ID: 3}, signedToken("jwt-google", time.Now().Add(24*time.Hour)), nil)

	req := withSession(newRequest(http.MethodGet, "/auth/google/callback?state=st&code=code-1", nil), "sess-9")
	rr := f.do(req)

	assert.Equal(t, http.StatusFound, rr.Code)
	location, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8765", location.Host)
	assert.Equal(t, "jwt-google", location.Query().Get("token"))

	cookie := findCookie(rr, identity.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "sess-9", cookie.Value)
}

func TestCompleteGoogleLogin_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "email in use", err: service.ErrEmailInUse, wantCode: "email_in_use"},
		{name: "disabled", err: service.ErrOAuthDisabled, wantCode: "oauth_disabled"},
		{name: "state mismatch", err: service.ErrOAuthStateMismatch, wantCode: "oauth_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, nil)
			f.oauth.EXPECT().CompleteLogin(gomock.Any(), "", "st", "c").Return(models.User{}, models.Token{}, tt.err)

			rr := f.do(newRequest(http.MethodGet, "/auth/google/callback?state=st&code=c", nil))

			assert.Equal(t, http.StatusFound, rr.Code)
			location, err := url.Parse(rr.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, location.Query().Get("error"))
			assert.Empty(t, location.Query().Get("token"))
		})
	}
}

func TestCompleteGoogleLogin_ConsentDenied(t *testing.T) {
	f := newHandlerFixture(t, nil)

	rr := f.do(newRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	location, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "oauth_failed", location.Query().Get("error"))
}

// ── Logout ───────────────────────────────────────────────────

func TestLogout_ClearsSession(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.oauth.EXPECT().Logout(gomock.Any(), "sess-1").Return(nil)

	rr := f.do(withSession(newRequest(http.MethodPost, "/auth/logout", nil), "sess-1"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	cookie := findCookie(rr, identity.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestLogout_WithoutSession(t *testing.T) {
	f := newHandlerFixture(t, nil)

	rr := f.do(newRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
