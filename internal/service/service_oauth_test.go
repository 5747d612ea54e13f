package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-keeper/internal/events"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

type oauthFixture struct {
	svc       *oauthService
	provider  *mock.MockProvider
	users     *mock.MockUserRepository
	sessions  *mock.MockSessionStore
	publisher *mock.MockPublisher
	now       time.Time
}

func newOAuthFixture(t *testing.T) *oauthFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &oauthFixture{
		provider:  mock.NewMockProvider(ctrl),
		users:     mock.NewMockUserRepository(ctrl),
		sessions:  mock.NewMockSessionStore(ctrl),
		publisher: mock.NewMockPublisher(ctrl),
		now:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	auth := NewAuthService(f.users, f.publisher, testAppConfig(), logger.Nop())
	f.svc = NewOAuthService(f.provider, f.users, f.sessions, auth, f.publisher, testAppConfig()).(*oauthService)
	f.svc.now = func() time.Time { return f.now }

	ids := 0
	f.svc.newID = func() string {
		ids++
		return "id-" + strconv.Itoa(ids)
	}
	return f
}

func pendingSession(now time.Time) models.Session {
	return models.Session{ID: "id-1", OAuthState: "id-2", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}
}

// ─────────────────────────────────────────────
// BeginLogin
// ─────────────────────────────────────────────

func TestOAuthService_BeginLogin(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	f.sessions.EXPECT().SaveSession(ctx, pendingSession(f.now)).Return(nil)
	f.provider.EXPECT().AuthCodeURL("id-2").Return("https://accounts.google.com/o/oauth2/auth?state=id-2")

	url, session, err := f.svc.BeginLogin(ctx)
	require.NoError(t, err)
	assert.Contains(t, url, "state=id-2")
	assert.Equal(t, "id-1", session.ID)
	assert.False(t, session.IsAuthenticated())
}

func TestOAuthService_Disabled(t *testing.T) {
	svc := NewOAuthService(nil, nil, nil, nil, events.NewNoop(), testAppConfig())

	assert.False(t, svc.Enabled())

	_, _, err := svc.BeginLogin(context.Background())
	assert.ErrorIs(t, err, ErrOAuthDisabled)

	_, _, err = svc.CompleteLogin(context.Background(), "s", "state", "code")
	assert.ErrorIs(t, err, ErrOAuthDisabled)
}

// ─────────────────────────────────────────────
// CompleteLogin
// ─────────────────────────────────────────────

func TestOAuthService_CompleteLogin_NewUser(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()
	profile := models.ProviderProfile{ProviderID: "sub-1", Email: "Ann@Example.com", Name: "Ann", AvatarURL: "https://pic"}

	f.sessions.EXPECT().GetSession(ctx, "id-1").Return(pendingSession(f.now), nil)
	f.provider.EXPECT().Exchange(ctx, "auth-code").Return(profile, nil)
	f.users.EXPECT().FindUserByProviderID(ctx, "sub-1").Return(models.User{}, store.ErrUserNotFound)
	f.users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Equal(t, "ann@example.com", u.Email)
		require.NotNil(t, u.ProviderID)
		assert.Equal(t, "sub-1", *u.ProviderID)
		assert.Nil(t, u.PasswordHash)
		require.NotNil(t, u.AvatarURL)
		u.ID = 9
		return u, nil
	})
	f.sessions.EXPECT().SaveSession(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s models.Session) error {
		assert.Equal(t, "id-1", s.ID)
		assert.Equal(t, int64(9), s.UserID)
		assert.Empty(t, s.OAuthState)
		assert.Equal(t, f.now.Add(24*time.Hour), s.ExpiresAt)
		return nil
	})
	f.publisher.EXPECT().Publish(ctx, events.UserLoggedInKey, gomock.Any()).Return(nil)

	user, token, err := f.svc.CompleteLogin(ctx, "id-1", "id-2", "auth-code")
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.Equal(t, int64(9), token.UserID)
}

func TestOAuthService_CompleteLogin_StateMismatch(t *testing.T) {
	tests := []struct {
		name    string
		session models.Session
		err     error
		state   string
	}{
		{name: "unknown session", err: store.ErrSessionNotFound, state: "id-2"},
		{name: "wrong state", session: models.Session{ID: "id-1", OAuthState: "id-2"}, state: "forged"},
		{name: "already bound", session: models.Session{ID: "id-1", UserID: 3}, state: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOAuthFixture(t)
			f.sessions.EXPECT().GetSession(gomock.Any(), "id-1").Return(tt.session, tt.err)

			_, _, err := f.svc.CompleteLogin(context.Background(), "id-1", tt.state, "auth-code")
			assert.ErrorIs(t, err, ErrOAuthStateMismatch)
		})
	}
}

func TestOAuthService_CompleteLogin_ExchangeFails(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	f.sessions.EXPECT().GetSession(ctx, "id-1").Return(pendingSession(f.now), nil)
	f.provider.EXPECT().Exchange(ctx, "auth-code").Return(models.ProviderProfile{}, errors.New("bad code"))

	_, _, err := f.svc.CompleteLogin(ctx, "id-1", "id-2", "auth-code")
	assert.ErrorIs(t, err, ErrOAuthProvider)
}

func TestOAuthService_CompleteLogin_MissingCode(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	f.sessions.EXPECT().GetSession(ctx, "id-1").Return(pendingSession(f.now), nil)

	_, _, err := f.svc.CompleteLogin(ctx, "id-1", "id-2", "")
	assert.ErrorIs(t, err, ErrOAuthProvider)
}

// ─────────────────────────────────────────────
// CompleteThirdPartyLogin
// ─────────────────────────────────────────────

func TestOAuthService_CompleteThirdPartyLogin_ExistingUser(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	f.users.EXPECT().FindUserByProviderID(ctx, "sub-1").Return(models.User{ID: 4}, nil)

	user, err := f.svc.CompleteThirdPartyLogin(ctx, models.ProviderProfile{ProviderID: "sub-1", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), user.ID)
}

func TestOAuthService_CompleteThirdPartyLogin_EmailInUse(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	f.users.EXPECT().FindUserByProviderID(ctx, "sub-1").Return(models.User{}, store.ErrUserNotFound)
	f.users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := f.svc.CompleteThirdPartyLogin(ctx, models.ProviderProfile{ProviderID: "sub-1", Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestOAuthService_CompleteThirdPartyLogin_ConcurrentCreate(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.users.EXPECT().FindUserByProviderID(ctx, "sub-1").Return(models.User{}, store.ErrUserNotFound),
		f.users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrProviderIDAlreadyExists),
		f.users.EXPECT().FindUserByProviderID(ctx, "sub-1").Return(models.User{ID: 11}, nil),
	)

	user, err := f.svc.CompleteThirdPartyLogin(ctx, models.ProviderProfile{ProviderID: "sub-1", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), user.ID)
}

func TestOAuthService_CompleteThirdPartyLogin_IncompleteProfile(t *testing.T) {
	f := newOAuthFixture(t)

	_, err := f.svc.CompleteThirdPartyLogin(context.Background(), models.ProviderProfile{ProviderID: "sub-1"})
	assert.ErrorIs(t, err, ErrOAuthProvider)
}

func TestOAuthService_CompleteThirdPartyLogin_OversizedProfile(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	f.users.EXPECT().FindUserByProviderID(ctx, "sub-1").Return(models.User{}, store.ErrUserNotFound)
	f.users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Equal(t, MaxNameLength, utf8.RuneCountInString(u.Name))
		u.ID = 12
		return u, nil
	})

	user, err := f.svc.CompleteThirdPartyLogin(ctx, models.ProviderProfile{
		ProviderID: "sub-1",
		Email:      "ann@example.com",
		Name:       strings.Repeat("я", MaxNameLength+10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), user.ID)

	f.users.EXPECT().FindUserByProviderID(ctx, "sub-2").Return(models.User{}, store.ErrUserNotFound)

	_, err = f.svc.CompleteThirdPartyLogin(ctx, models.ProviderProfile{
		ProviderID: "sub-2",
		Email:      strings.Repeat("a", MaxEmailLength) + "@example.com",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

// ─────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────

func TestOAuthService_Logout(t *testing.T) {
	f := newOAuthFixture(t)
	ctx := context.Background()

	f.sessions.EXPECT().DeleteSession(ctx, "id-1").Return(nil)

	require.NoError(t, f.svc.Logout(ctx, "id-1"))
	require.NoError(t, f.svc.Logout(ctx, ""))
}
