package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutapi/internal/db/dbtest"
	apperrors "workoutapi/internal/errors"
	"workoutapi/internal/model"
)

func newUser(email, token string) *model.User {
	return &model.User{
		Username:          "alex",
		Email:             email,
		PasswordHash:      "hash",
		VerificationToken: &token,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	user := newUser("a@x.com", "tok-1")
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.False(t, byEmail.IsEmailVerified)

	byToken, err := repo.FindByVerificationToken(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, byToken)
	assert.Equal(t, user.ID, byToken.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alex", byID.Username)
}

func TestUserRepository_MissingIsNotAnError(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	u, err := repo.FindByEmail(ctx, "nobody@x.com")
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByVerificationToken(ctx, "never-issued")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@x.com", "t1")))
	err := repo.Create(ctx, newUser("a@x.com", "t2"))

	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newUser("race@x.com", uuid.NewString()))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, created)
}

func TestUserRepository_MarkVerifiedIsSingleUse(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	user := newUser("a@x.com", "tok")
	require.NoError(t, repo.Create(ctx, user))

	ok, err := repo.MarkVerified(ctx, user.ID, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkVerified(ctx, user.ID, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsEmailVerified)
	assert.Nil(t, stored.VerificationToken)

	again, err := repo.FindByVerificationToken(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	repo := NewUserRepository(dbtest.Open(t))
	ctx := context.Background()

	user := newUser("a@x.com", "tok")
	require.NoError(t, repo.Create(ctx, user))

	ok, err := repo.UpdateFields(ctx, user.ID, map[string]interface{}{"password_hash": "new-hash"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateFields(ctx, uuid.New(), map[string]interface{}{"password_hash": "x"})
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", stored.PasswordHash)

	require.NoError(t, repo.Delete(ctx, user.ID))
	require.NoError(t, repo.Delete(ctx, user.ID))

	gone, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
