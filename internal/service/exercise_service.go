package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "workoutapi/internal/errors"
	"workoutapi/internal/model"
	"workoutapi/internal/repository"
)

// ExerciseInput is a new exercise. Zero load or reps count as missing.
type ExerciseInput struct {
	Title  string
	Load   decimal.Decimal
	Reps   int
	UserID string
}

// ExerciseUpdate holds the fields to change; nil fields are left untouched.
type ExerciseUpdate struct {
	Title *string
	Load  *decimal.Decimal
	Reps  *int
}

// ExerciseService manages logged exercises. actor is the authenticated user.
type ExerciseService interface {
	Create(ctx context.Context, actor uuid.UUID, in ExerciseInput) (*model.Exercise, error)
	ListByUser(ctx context.Context, actor uuid.UUID, userID string) ([]model.Exercise, error)
	Get(ctx context.Context, actor uuid.UUID, id string) (*model.Exercise, error)
	Update(ctx context.Context, actor uuid.UUID, id string, in ExerciseUpdate) (*model.Exercise, error)
	Delete(ctx context.Context, actor uuid.UUID, id string) error
}

type exerciseService struct {
	repo   repository.ExerciseRepository
	logger zerolog.Logger
}

// NewExerciseService creates a new exercise service.
func NewExerciseService(repo repository.ExerciseRepository, logger zerolog.Logger) ExerciseService {
	return &exerciseService{repo: repo, logger: logger.With().Str("component", "exercise").Logger()}
}

func (s *exerciseService) Create(ctx context.Context, actor uuid.UUID, in ExerciseInput) (*model.Exercise, error) {
	if in.Title == "" || in.Load.IsZero() || in.Reps == 0 || in.UserID == "" {
		return nil, fmt.Errorf("%w: all levels and details are required", apperrors.ErrValidation)
	}
	userID, err := ParseID(in.UserID, "user")
	if err != nil {
		return nil, err
	}
	if err := ensureSelf(actor, userID); err != nil {
		return nil, err
	}

	exercise := &model.Exercise{
		Title:  in.Title,
		Load:   in.Load,
		Reps:   in.Reps,
		UserID: userID,
	}
	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	s.logger.Debug().Str("exercise_id", exercise.ID.String()).Msg("exercise created")
	return exercise, nil
}

func (s *exerciseService) ListByUser(ctx context.Context, actor uuid.UUID, userID string) ([]model.Exercise, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if err := ensureSelf(actor, id); err != nil {
		return nil, err
	}

	exercises, err := s.repo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, fmt.Errorf("no workouts found: %w", apperrors.ErrNotFound)
	}
	return exercises, nil
}

func (s *exerciseService) Get(ctx context.Context, actor uuid.UUID, id string) (*model.Exercise, error) {
	exerciseID, err := ParseID(id, "exercise")
	if err != nil {
		return nil, err
	}
	return s.owned(ctx, actor, exerciseID)
}

func (s *exerciseService) Update(ctx context.Context, actor uuid.UUID, id string, in ExerciseUpdate) (*model.Exercise, error) {
	exerciseID, err := ParseID(id, "exercise")
	if err != nil {
		return nil, err
	}
	current, err := s.owned(ctx, actor, exerciseID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Load != nil {
		fields["load"] = *in.Load
	}
	if in.Reps != nil {
		fields["reps"] = *in.Reps
	}
	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, exerciseID, fields)
	if err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("workout exercise not found: %w", apperrors.ErrNotFound)
	}
	return updated, nil
}

func (s *exerciseService) Delete(ctx context.Context, actor uuid.UUID, id string) error {
	exerciseID, err := ParseID(id, "exercise")
	if err != nil {
		return err
	}
	if _, err := s.owned(ctx, actor, exerciseID); err != nil {
		return err
	}
	removed, err := s.repo.Delete(ctx, exerciseID)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if !removed {
		return fmt.Errorf("gym exercise not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// owned loads an exercise and hides other users' records as not found.
func (s *exerciseService) owned(ctx context.Context, actor, id uuid.UUID) (*model.Exercise, error) {
	exercise, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find exercise: %w", err)
	}
	if exercise == nil || exercise.UserID != actor {
		return nil, fmt.Errorf("exercise not found: %w", apperrors.ErrNotFound)
	}
	return exercise, nil
}
