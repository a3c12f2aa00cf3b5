package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutapi/internal/db/dbtest"
	"workoutapi/internal/model"
)

func TestExerciseRepository(t *testing.T) {
	repo := NewExerciseRepository(dbtest.Open(t))
	ctx := context.Background()
	userID := uuid.New()

	squat := &model.Exercise{Title: "Squat", Load: decimal.RequireFromString("102.5"), Reps: 5, UserID: userID}
	require.NoError(t, repo.Create(ctx, squat))
	require.NoError(t, repo.Create(ctx, &model.Exercise{Title: "Row", Load: decimal.NewFromInt(60), Reps: 8, UserID: uuid.New()}))

	list, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Squat", list[0].Title)
	assert.True(t, list[0].Load.Equal(decimal.RequireFromString("102.5")))

	updated, err := repo.Update(ctx, squat.ID, map[string]interface{}{"reps": 3, "load": decimal.NewFromInt(110)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 3, updated.Reps)
	assert.True(t, updated.Load.Equal(decimal.NewFromInt(110)))

	missing, err := repo.Update(ctx, uuid.New(), map[string]interface{}{"reps": 1})
	require.NoError(t, err)
	assert.Nil(t, missing)

	removed, err := repo.Delete(ctx, squat.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, squat.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	found, err := repo.FindByID(ctx, squat.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestWorkoutPlanRepository(t *testing.T) {
	repo := NewWorkoutPlanRepository(dbtest.Open(t))
	ctx := context.Background()
	userID := uuid.New()

	plan := &model.WorkoutPlan{UserID: &userID, Title: "Legs", Day: "Monday"}
	require.NoError(t, repo.Create(ctx, plan))

	plans, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	updated, err := repo.Update(ctx, plan.ID, map[string]interface{}{"day": "Tuesday"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Tuesday", updated.Day)
	assert.Equal(t, "Legs", updated.Title)

	require.NoError(t, repo.Delete(ctx, plan.ID))
	require.NoError(t, repo.Delete(ctx, plan.ID))

	found, err := repo.FindByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPerformanceRepository(t *testing.T) {
	repo := NewPerformanceRepository(dbtest.Open(t))
	ctx := context.Background()
	userID := uuid.New()

	later := &model.Performance{UserID: userID, Date: 2000, Weight: decimal.NewFromInt(80), ExerciseName: "Bench", Load: decimal.NewFromInt(70), Reps: 5}
	earlier := &model.Performance{UserID: userID, Date: 1000, Weight: decimal.NewFromInt(81), ExerciseName: "Bench", Load: decimal.NewFromInt(65), Reps: 5}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	records, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1000), records[0].Date)

	require.NoError(t, repo.Delete(ctx, earlier.ID, uuid.New()))
	records, err = repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, repo.Delete(ctx, earlier.ID, userID))
	records, err = repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	empty, err := repo.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
