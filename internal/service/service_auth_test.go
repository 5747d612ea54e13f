package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/events"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-task-keeper"
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:     testSignKey,
		TokenIssuer:      testIssuer,
		TokenDuration:    24 * time.Hour,
		PasswordHashCost: bcrypt.MinCost,
		SessionTTL:       10 * time.Minute,
	}
}

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository, *mock.MockPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	publisher := mock.NewMockPublisher(ctrl)
	return NewAuthService(users, publisher, testAppConfig(), logger.Nop()), users, publisher
}

func hashedUser(t *testing.T, id int64, email, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{ID: id, Email: email, Name: "Ann", PasswordHash: &hash}
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	svc, users, publisher := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Equal(t, "ann@example.com", u.Email)
		assert.Equal(t, "Ann", u.Name)
		require.NotNil(t, u.PasswordHash)
		assert.NoError(t, utils.ComparePassword(*u.PasswordHash, "secret1"))
		assert.Nil(t, u.ProviderID)
		u.ID = 42
		return u, nil
	})
	publisher.EXPECT().Publish(ctx, events.UserRegisteredKey, gomock.Any()).Return(nil)

	user, token, err := svc.Register(ctx, models.RegisterRequest{Email: "  Ann@Example.com ", Password: "secret1", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.NotEmpty(t, token.SignedString)

	identity, err := svc.ParseCredential(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: 42, Email: "ann@example.com", Name: "Ann"}, identity)
}

func TestAuthService_Register_DefaultsNameToLocalPart(t *testing.T) {
	svc, users, publisher := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "bob@example.com").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		u.ID = 1
		return u, nil
	})
	publisher.EXPECT().Publish(ctx, events.UserRegisteredKey, gomock.Any()).Return(nil)

	user, _, err := svc.Register(ctx, models.RegisterRequest{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
}

func TestAuthService_Register_LongestPasswordLogsIn(t *testing.T) {
	svc, users, publisher := newTestAuthService(t)
	ctx := context.Background()
	password := strings.Repeat("p", MaxPasswordLength)
	var stored models.User

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		u.ID = 7
		stored = u
		return u, nil
	})
	publisher.EXPECT().Publish(ctx, events.UserRegisteredKey, gomock.Any()).Return(nil)

	_, _, err := svc.Register(ctx, models.RegisterRequest{Email: "ann@example.com", Password: password})
	require.NoError(t, err)

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").DoAndReturn(func(context.Context, string) (models.User, error) {
		return stored, nil
	})
	publisher.EXPECT().Publish(ctx, events.UserLoggedInKey, gomock.Any()).Return(nil)

	user, _, err := svc.Login(ctx, models.LoginRequest{Email: "ann@example.com", Password: password})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{ID: 1}, nil)

	_, _, err := svc.Register(ctx, models.RegisterRequest{Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_DuplicateEmailRace(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, _, err := svc.Register(ctx, models.RegisterRequest{Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{name: "empty email", req: models.RegisterRequest{Password: "secret1"}},
		{name: "malformed email", req: models.RegisterRequest{Email: "not-an-email", Password: "secret1"}},
		{name: "display name form", req: models.RegisterRequest{Email: "Ann <ann@example.com>", Password: "secret1"}},
		{name: "short password", req: models.RegisterRequest{Email: "ann@example.com", Password: "12345"}},
		{name: "password over bcrypt limit", req: models.RegisterRequest{Email: "ann@example.com", Password: strings.Repeat("p", MaxPasswordLength+1)}},
		{name: "long name", req: models.RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: strings.Repeat("я", MaxNameLength+1)}},
		{name: "long email", req: models.RegisterRequest{Email: strings.Repeat("a", MaxEmailLength) + "@example.com", Password: "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthService(t)

			_, _, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrExecutingQuery)

	_, _, err := svc.Register(ctx, models.RegisterRequest{Email: "ann@example.com", Password: "secret1"})
	require.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Register_PublishFailureIsNotFatal(t *testing.T) {
	svc, users, publisher := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, gomock.Any()).Return(models.User{}, store.ErrUserNotFound)
	users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{ID: 5, Email: "ann@example.com"}, nil)
	publisher.EXPECT().Publish(ctx, events.UserRegisteredKey, gomock.Any()).Return(errors.New("broker down"))

	_, token, err := svc.Register(ctx, models.RegisterRequest{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, publisher := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "ann@example.com").Return(hashedUser(t, 7, "ann@example.com", "secret1"), nil)
	publisher.EXPECT().Publish(ctx, events.UserLoggedInKey, gomock.Any()).Return(nil)

	user, token, err := svc.Login(ctx, models.LoginRequest{Email: "ANN@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, int64(7), token.UserID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, users *mock.MockUserRepository)
	}{
		{
			name: "unknown email",
			setup: func(_ *testing.T, users *mock.MockUserRepository) {
				users.EXPECT().FindUserByEmail(gomock.Any(), "ann@example.com").Return(models.User{}, store.ErrUserNotFound)
			},
		},
		{
			name: "wrong password",
			setup: func(t *testing.T, users *mock.MockUserRepository) {
				users.EXPECT().FindUserByEmail(gomock.Any(), "ann@example.com").Return(hashedUser(t, 7, "ann@example.com", "other-password"), nil)
			},
		},
		{
			name: "google-only account",
			setup: func(_ *testing.T, users *mock.MockUserRepository) {
				providerID := "google-sub"
				users.EXPECT().FindUserByEmail(gomock.Any(), "ann@example.com").Return(models.User{ID: 7, ProviderID: &providerID}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestAuthService(t)
			tt.setup(t, users)

			_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ann@example.com", Password: "secret1"})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

// ─────────────────────────────────────────────
// Credentials
// ─────────────────────────────────────────────

func TestAuthService_IssueCredential_Payload(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	before := time.Now()
	token, err := svc.IssueCredential(context.Background(), models.User{ID: 3, Email: "ann@example.com", Name: "Ann"})
	require.NoError(t, err)

	assert.Equal(t, int64(3), token.Claims.ID)
	assert.Equal(t, "ann@example.com", token.Claims.Email)
	assert.Equal(t, "Ann", token.Claims.Name)
	assert.WithinDuration(t, before.Add(24*time.Hour), token.Claims.ExpiresAt.Time, 5*time.Second)
}

func TestAuthService_ParseCredential_Expired(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	past := time.Now().Add(-time.Hour)
	claims := models.Claims{
		ID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "3",
			IssuedAt:  jwt.NewNumericDate(past.Add(-24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, err = svc.ParseCredential(context.Background(), signed)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_ParseCredential_Forged(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	token, err := utils.GenerateJWTToken(testIssuer, models.Identity{UserID: 3}, time.Hour, "another-key")
	require.NoError(t, err)

	_, err = svc.ParseCredential(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrTokenIsExpired)
}

// ─────────────────────────────────────────────
// Me
// ─────────────────────────────────────────────

func TestAuthService_Me(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(models.User{ID: 3, Email: "ann@example.com"}, nil)

	user, err := svc.Me(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
}

func TestAuthService_Me_DeletedUser(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Me(ctx, 3)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
