package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/events"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

const (
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72

	// MaxEmailLength and MaxNameLength match the users columns.
	MaxEmailLength = 255
	MaxNameLength  = 255
)

// authService is the concrete implementation of AuthService.
// It handles registration, password verification and the JWT credential
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	userRepository store.UserRepository
	publisher      events.Publisher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// hashCost is the bcrypt cost factor.
	hashCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, publisher events.Publisher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		publisher:      publisher,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		hashCost:       cfg.PasswordHashCost,
		logger:         logger,
	}
}

// Register creates a local account and signs the new user in.
//
// Returns:
//   - ErrValidation if the e-mail or password is unacceptable.
//   - ErrDuplicateEmail if the e-mail is already registered.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return models.User{}, models.Token{}, err
	}
	if len(req.Password) < MinPasswordLength {
		return models.User{}, models.Token{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if len(req.Password) > MaxPasswordLength {
		return models.User{}, models.Token{}, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordLength)
	}

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) > MaxNameLength {
		return models.User{}, models.Token{}, fmt.Errorf("%w: name must be at most %d characters", ErrValidation, MaxNameLength)
	}
	if name == "" {
		name = emailLocalPart(email)
	}

	_, err = a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, models.Token{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authService.Register").Msg("user lookup failed")
		return models.User{}, models.Token{}, fmt.Errorf("user lookup failed: %w", err)
	}

	hash, err := utils.HashPassword(req.Password, a.hashCost)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, models.Token{}, ErrDuplicateEmail
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.publish(ctx, events.UserRegisteredKey, events.UserRegistered{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		OccurredAt: time.Now().UTC(),
	})

	token, err := a.IssueCredential(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// Login verifies an e-mail and password pair. Unknown e-mail, an account
// without a password and a wrong password all yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return models.User{}, models.Token{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("func", "*authService.Login").Msg("unknown email")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.HasPassword() {
		log.Debug().Int64("id", user.ID).Msg("account has no password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if err = utils.ComparePassword(*user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			log.Debug().Int64("id", user.ID).Msg("wrong password")
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		return models.User{}, models.Token{}, err
	}

	a.publish(ctx, events.UserLoggedInKey, events.UserLoggedIn{
		UserID:     user.ID,
		Email:      user.Email,
		Method:     "password",
		OccurredAt: time.Now().UTC(),
	})

	token, err := a.IssueCredential(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// IssueCredential issues a signed JWT carrying {id, email, name}.
func (a *authService) IssueCredential(ctx context.Context, user models.User) (models.Token, error) {
	identity := models.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, identity, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.IssueCredential").Send()
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseCredential validates a raw JWT string. Every failure wraps
// ErrUnauthorized; an expired token additionally wraps ErrTokenIsExpired.
func (a *authService) ParseCredential(ctx context.Context, tokenString string) (models.Identity, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseCredential").Msg("rejected token")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrTokenIsExpired)
		}
		return models.Identity{}, ErrUnauthorized
	}

	return token.Identity(), nil
}

// Me re-reads the user behind a resolved identity. A user that no longer
// exists is ErrUnauthorized.
func (a *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Me").Send()
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

func (a *authService) publish(ctx context.Context, key string, event any) {
	if err := a.publisher.Publish(ctx, key, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("event was not published")
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return "", fmt.Errorf("%w: email must be at most %d characters", ErrValidation, MaxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	return email, nil
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
