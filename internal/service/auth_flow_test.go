package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutapi/internal/auth"
	"workoutapi/internal/cache"
	"workoutapi/internal/db/dbtest"
	apperrors "workoutapi/internal/errors"
	"workoutapi/internal/events"
	"workoutapi/internal/repository"
)

type flowFixture struct {
	svc    AuthService
	users  repository.UserRepository
	mailer *fakeDispatcher
	redis  *miniredis.Miniredis
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	cacheClient := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	users := repository.NewUserRepository(dbtest.Open(t))
	mailer := &fakeDispatcher{}

	svc := NewAuthService(
		users,
		auth.NewJWTService(testSecret),
		auth.NewSessionStore(cacheClient),
		mailer,
		events.NopPublisher{},
		cacheClient,
		zerolog.Nop(),
		testAuthConfig(),
	)
	return &flowFixture{svc: svc, users: users, mailer: mailer, redis: mr}
}

func TestAuthFlow_SignupVerifyLogin(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, SignupInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	stored, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, stored.IsEmailVerified)
	require.NotNil(t, stored.VerificationToken)
	assert.NotEmpty(t, *stored.VerificationToken)
	require.NotNil(t, stored.VerificationExpiresAt)
	assert.True(t, stored.VerificationExpiresAt.After(time.Now()))

	_, err = f.svc.Login(ctx, LoginInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrNotVerified)

	require.NoError(t, f.svc.Verify(ctx, signup.Token))
	assert.ErrorIs(t, f.svc.Verify(ctx, signup.Token), apperrors.ErrInvalidOrExpiredToken)

	login, err := f.svc.Login(ctx, LoginInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	before, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, LoginInput{Username: "alex", Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	after, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	userID, err := f.svc.AuthenticateSession(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, userID)
}

func TestAuthFlow_NeverIssuedToken(t *testing.T) {
	f := newFlowFixture(t)

	err := f.svc.Verify(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)
}

func TestAuthFlow_ConcurrentSignupSameEmail(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	const n = 6
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Signup(ctx, SignupInput{Username: "alex", Email: "race@x.com", Password: "secret123"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.mailer.sent(), 1)
}

func TestAuthFlow_ProfileNeverCarriesCredentials(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, SignupInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ { // second read is served from redis
		profile, err := f.svc.GetProfile(ctx, signup.User.ID)
		require.NoError(t, err)
		raw, err := json.Marshal(profile)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "$2a$")
		assert.NotContains(t, string(raw), signup.Token)
	}

	require.NoError(t, f.svc.Verify(ctx, signup.Token))
	profile, err := f.svc.GetProfile(ctx, signup.User.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsEmailVerified)
}

func TestAuthFlow_PasswordChangeRevokesSessions(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, SignupInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Verify(ctx, signup.Token))
	login, err := f.svc.Login(ctx, LoginInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	// revocation resolves to the millisecond
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, f.svc.UpdatePassword(ctx, signup.User.ID, "n3w-pass"))

	_, err = f.svc.AuthenticateSession(ctx, login.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredToken)

	_, err = f.svc.Login(ctx, LoginInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	time.Sleep(5 * time.Millisecond)
	fresh, err := f.svc.Login(ctx, LoginInput{Username: "alex", Email: "a@x.com", Password: "n3w-pass"})
	require.NoError(t, err)
	_, err = f.svc.AuthenticateSession(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestAuthFlow_DeleteIsIdempotent(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	signup, err := f.svc.Signup(ctx, SignupInput{Username: "alex", Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAccount(ctx, signup.User.ID))
	require.NoError(t, f.svc.DeleteAccount(ctx, signup.User.ID))

	_, err = f.svc.GetProfile(ctx, signup.User.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
