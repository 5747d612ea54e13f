// Package oauth wraps the Google OAuth 2.0 authorization-code flow: building
// the consent URL, exchanging the code and reading the user's profile.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/models"
)

// GoogleUserInfoURL is the OpenID Connect userinfo endpoint.
const GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var (
	// ErrExchange is returned when the authorization code is rejected.
	ErrExchange = errors.New("oauth code exchange failed")

	// ErrProfile is returned when the profile cannot be read or is incomplete.
	ErrProfile = errors.New("oauth profile unavailable")
)

//go:generate mockgen -source=google.go -destination=../mock/oauth_mock.go -package=mock

// Provider is a third-party identity provider.
type Provider interface {
	// AuthCodeURL returns the consent screen URL carrying state.
	AuthCodeURL(state string) string
	// Exchange trades the authorization code for the user's profile.
	Exchange(ctx context.Context, code string) (models.ProviderProfile, error)
}

// Google implements [Provider] for Google accounts.
type Google struct {
	cfg         *oauth2.Config
	userInfoURL string
}

// NewGoogle returns nil when Google sign-in is not configured.
func NewGoogle(cfg config.Google) *Google {
	if cfg.ClientID == "" {
		return nil
	}

	return newGoogle(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}, GoogleUserInfoURL)
}

func newGoogle(cfg *oauth2.Config, userInfoURL string) *Google {
	return &Google{cfg: cfg, userInfoURL: userInfoURL}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (g *Google) Exchange(ctx context.Context, code string) (models.ProviderProfile, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return models.ProviderProfile{}, fmt.Errorf("%w: %w", ErrExchange, err)
	}

	var info googleUserInfo
	resp, err := resty.NewWithClient(g.cfg.Client(ctx, token)).R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&info).
		Get(g.userInfoURL)
	if err != nil {
		return models.ProviderProfile{}, fmt.Errorf("%w: %w", ErrProfile, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.ProviderProfile{}, fmt.Errorf("%w: userinfo status %d", ErrProfile, resp.StatusCode())
	}
	if info.Sub == "" || info.Email == "" {
		return models.ProviderProfile{}, fmt.Errorf("%w: missing subject or email", ErrProfile)
	}

	return models.ProviderProfile{
		ProviderID: info.Sub,
		Email:      info.Email,
		Name:       info.Name,
		AvatarURL:  info.Picture,
	}, nil
}
