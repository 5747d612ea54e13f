package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/MKhiriev/go-task-keeper/internal/config"
)

func newTestProvider(t *testing.T, userInfo http.HandlerFunc) *Google {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", userInfo)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return newGoogle(&oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, srv.URL+"/userinfo")
}

func TestNewGoogle_DisabledWithoutClientID(t *testing.T) {
	assert.Nil(t, NewGoogle(config.Google{}))
	assert.NotNil(t, NewGoogle(config.Google{ClientID: "id", ClientSecret: "s", RedirectURL: "http://x"}))
}

func TestGoogle_AuthCodeURL(t *testing.T) {
	g := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	u, err := url.Parse(g.AuthCodeURL("state-1"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "client", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
}

func TestGoogle_Exchange(t *testing.T) {
	g := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sub":     "g-123",
			"email":   "ann@example.com",
			"name":    "Ann",
			"picture": "https://pic",
		})
	})

	profile, err := g.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "g-123", profile.ProviderID)
	assert.Equal(t, "ann@example.com", profile.Email)
	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, "https://pic", profile.AvatarURL)
}

func TestGoogle_Exchange_BadCode(t *testing.T) {
	g := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := g.Exchange(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrExchange)
}

func TestGoogle_Exchange_IncompleteProfile(t *testing.T) {
	g := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"g-123"}`))
	})

	_, err := g.Exchange(context.Background(), "good-code")
	assert.ErrorIs(t, err, ErrProfile)
}

func TestGoogle_Exchange_UserInfoFailure(t *testing.T) {
	g := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := g.Exchange(context.Background(), "good-code")
	assert.ErrorIs(t, err, ErrProfile)
}
