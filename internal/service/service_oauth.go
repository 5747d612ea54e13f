package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/events"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/oauth"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

// MaxProviderIDLength matches the users.provider_id column.
const MaxProviderIDLength = 255

type oauthService struct {
	provider       oauth.Provider
	userRepository store.UserRepository
	sessions       store.SessionStore
	auth           AuthService
	publisher      events.Publisher

	// pendingTTL bounds the handshake; boundTTL is the lifetime of a
	// session once a user is signed in.
	pendingTTL time.Duration
	boundTTL   time.Duration

	newID func() string
	now   func() time.Time
}

// NewOAuthService wires the Google handshake. provider may be nil, in which
// case every handshake call fails with ErrOAuthDisabled.
func NewOAuthService(
	provider oauth.Provider,
	userRepository store.UserRepository,
	sessions store.SessionStore,
	auth AuthService,
	publisher events.Publisher,
	cfg config.App,
) OAuthService {
	return &oauthService{
		provider:       provider,
		userRepository: userRepository,
		sessions:       sessions,
		auth:           auth,
		publisher:      publisher,
		pendingTTL:     cfg.SessionTTL,
		boundTTL:       cfg.TokenDuration,
		newID:          utils.RandomToken,
		now:            time.Now,
	}
}

func (s *oauthService) Enabled() bool {
	return s.provider != nil
}

func (s *oauthService) BeginLogin(ctx context.Context) (string, models.Session, error) {
	if !s.Enabled() {
		return "", models.Session{}, ErrOAuthDisabled
	}

	now := s.now().UTC()
	session := models.Session{
		ID:         s.newID(),
		OAuthState: s.newID(),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.pendingTTL),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*oauthService.BeginLogin").Msg("error saving session")
		return "", models.Session{}, fmt.Errorf("save session: %w", err)
	}

	return s.provider.AuthCodeURL(session.OAuthState), session, nil
}

func (s *oauthService) CompleteLogin(ctx context.Context, sessionID, state, code string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if !s.Enabled() {
		return models.User{}, models.Token{}, ErrOAuthDisabled
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		log.Debug().Err(err).Str("func", "*oauthService.CompleteLogin").Msg("no pending session")
		return models.User{}, models.Token{}, ErrOAuthStateMismatch
	}
	if session.OAuthState == "" || subtle.ConstantTimeCompare([]byte(session.OAuthState), []byte(state)) != 1 {
		return models.User{}, models.Token{}, ErrOAuthStateMismatch
	}
	if code == "" {
		return models.User{}, models.Token{}, fmt.Errorf("%w: missing authorization code", ErrOAuthProvider)
	}

	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*oauthService.CompleteLogin").Msg("code exchange failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrOAuthProvider, err)
	}

	user, err := s.CompleteThirdPartyLogin(ctx, profile)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	now := s.now().UTC()
	session.UserID = user.ID
	session.Email = user.Email
	session.Name = user.Name
	session.OAuthState = ""
	session.ExpiresAt = now.Add(s.boundTTL)
	if err = s.sessions.SaveSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*oauthService.CompleteLogin").Msg("error binding session")
		return models.User{}, models.Token{}, fmt.Errorf("bind session: %w", err)
	}

	token, err := s.auth.IssueCredential(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	if err = s.publisher.Publish(ctx, events.UserLoggedInKey, events.UserLoggedIn{
		UserID:     user.ID,
		Email:      user.Email,
		Method:     "google",
		OccurredAt: now,
	}); err != nil {
		log.Warn().Err(err).Msg("event was not published")
	}

	return user, token, nil
}

// CompleteThirdPartyLogin finds the account linked to the provider id or
// creates it. Accounts are never merged by e-mail: a profile whose e-mail
// belongs to another account fails with ErrEmailInUse.
func (s *oauthService) CompleteThirdPartyLogin(ctx context.Context, profile models.ProviderProfile) (models.User, error) {
	log := logger.FromContext(ctx)

	if profile.ProviderID == "" || profile.Email == "" {
		return models.User{}, fmt.Errorf("%w: incomplete profile", ErrOAuthProvider)
	}

	user, err := s.userRepository.FindUserByProviderID(ctx, profile.ProviderID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("func", "*oauthService.CompleteThirdPartyLogin").Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if utf8.RuneCountInString(email) > MaxEmailLength || utf8.RuneCountInString(profile.ProviderID) > MaxProviderIDLength {
		return models.User{}, fmt.Errorf("%w: profile fields exceed column limits", ErrValidation)
	}
	// the display name is cosmetic, a long one must not block sign-in
	name := truncateRunes(strings.TrimSpace(profile.Name), MaxNameLength)
	if name == "" {
		name = truncateRunes(emailLocalPart(email), MaxNameLength)
	}
	providerID := profile.ProviderID
	newUser := models.User{Email: email, Name: name, ProviderID: &providerID}
	if profile.AvatarURL != "" {
		avatar := profile.AvatarURL
		newUser.AvatarURL = &avatar
	}

	user, err = s.userRepository.CreateUser(ctx, newUser)
	switch {
	case err == nil:
		log.Info().Int64("id", user.ID).Msg("user created from google profile")
		return user, nil
	case errors.Is(err, store.ErrProviderIDAlreadyExists):
		// a concurrent callback created the account first
		return s.userRepository.FindUserByProviderID(ctx, providerID)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, ErrEmailInUse
	default:
		log.Err(err).Str("func", "*oauthService.CompleteThirdPartyLogin").Msg("user creation failed")
		return models.User{}, fmt.Errorf("user creation failed: %w", err)
	}
}

func (s *oauthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}
