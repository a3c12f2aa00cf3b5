package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"workoutapi/internal/db/dbtest"
	"workoutapi/internal/repository"
)

func TestSeedDemo_CreatesOnce(t *testing.T) {
	gormDB := dbtest.Open(t)
	repos := seedRepos{
		users:       repository.NewUserRepository(gormDB),
		exercises:   repository.NewExerciseRepository(gormDB),
		plans:       repository.NewWorkoutPlanRepository(gormDB),
		performance: repository.NewPerformanceRepository(gormDB),
	}
	ctx := context.Background()
	data := defaultSeed()

	user, created, err := seedDemo(ctx, repos, data, time.Now(), zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, user.IsEmailVerified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)))

	exercises, err := repos.exercises.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, exercises, len(data.Exercises))

	plans, err := repos.plans.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, plans, len(data.Plans))

	records, err := repos.performance.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, records, len(data.Performance))

	again, created, err := seedDemo(ctx, repos, data, time.Now(), zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
}

func TestFetchSeedData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"username":"sam","email":"sam@example.com","password":"pw","exercises":[{"title":"Row","load":"60.5","reps":10}]}`))
		case "/partial":
			_, _ = w.Write([]byte(`{"username":"sam"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	data, err := fetchSeedData(srv.URL + "/ok")
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", data.Email)
	require.Len(t, data.Exercises, 1)
	assert.Equal(t, "60.5", data.Exercises[0].Load.String())

	_, err = fetchSeedData(srv.URL + "/partial")
	assert.Error(t, err)

	_, err = fetchSeedData(srv.URL + "/missing")
	assert.Error(t, err)
}
