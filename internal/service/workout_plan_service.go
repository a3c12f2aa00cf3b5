package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "workoutapi/internal/errors"
	"workoutapi/internal/model"
	"workoutapi/internal/repository"
)

// WorkoutPlanInput is a new plan entry. UserID defaults to the actor.
type WorkoutPlanInput struct {
	UserID string
	Title  string
	Day    string
}

// WorkoutPlanUpdate holds the fields to change; nil fields are left untouched.
type WorkoutPlanUpdate struct {
	Title *string
	Day   *string
}

// WorkoutPlanService manages weekly workout plans.
type WorkoutPlanService interface {
	List(ctx context.Context, actor uuid.UUID, userID string) ([]model.WorkoutPlan, error)
	Create(ctx context.Context, actor uuid.UUID, in WorkoutPlanInput) (*model.WorkoutPlan, error)
	Get(ctx context.Context, actor uuid.UUID, id string) (*model.WorkoutPlan, error)
	Update(ctx context.Context, actor uuid.UUID, id string, in WorkoutPlanUpdate) (*model.WorkoutPlan, error)
	Delete(ctx context.Context, actor uuid.UUID, id string) error
}

type workoutPlanService struct {
	repo repository.WorkoutPlanRepository
}

// NewWorkoutPlanService creates a new workout plan service.
func NewWorkoutPlanService(repo repository.WorkoutPlanRepository) WorkoutPlanService {
	return &workoutPlanService{repo: repo}
}

// List returns the actor's plans. An empty userID means the actor.
func (s *workoutPlanService) List(ctx context.Context, actor uuid.UUID, userID string) ([]model.WorkoutPlan, error) {
	owner := actor
	if userID != "" {
		id, err := ParseID(userID, "user")
		if err != nil {
			return nil, err
		}
		if err := ensureSelf(actor, id); err != nil {
			return nil, err
		}
		owner = id
	}
	plans, err := s.repo.ListByUser(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list workout plans: %w", err)
	}
	return plans, nil
}

func (s *workoutPlanService) Create(ctx context.Context, actor uuid.UUID, in WorkoutPlanInput) (*model.WorkoutPlan, error) {
	if in.Title == "" || in.Day == "" {
		return nil, fmt.Errorf("%w: title and day are required", apperrors.ErrValidation)
	}
	owner := actor
	if in.UserID != "" {
		id, err := ParseID(in.UserID, "user")
		if err != nil {
			return nil, err
		}
		if err := ensureSelf(actor, id); err != nil {
			return nil, err
		}
	}

	plan := &model.WorkoutPlan{UserID: &owner, Title: in.Title, Day: in.Day}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create workout plan: %w", err)
	}
	return plan, nil
}

func (s *workoutPlanService) Get(ctx context.Context, actor uuid.UUID, id string) (*model.WorkoutPlan, error) {
	planID, err := ParseID(id, "workout plan")
	if err != nil {
		return nil, err
	}
	return s.owned(ctx, actor, planID)
}

func (s *workoutPlanService) Update(ctx context.Context, actor uuid.UUID, id string, in WorkoutPlanUpdate) (*model.WorkoutPlan, error) {
	planID, err := ParseID(id, "workout plan")
	if err != nil {
		return nil, err
	}
	current, err := s.owned(ctx, actor, planID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Day != nil {
		fields["day"] = *in.Day
	}
	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, planID, fields)
	if err != nil {
		return nil, fmt.Errorf("update workout plan: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("workout plan not found: %w", apperrors.ErrNotFound)
	}
	return updated, nil
}

// Delete is idempotent: unknown or foreign ids are a no-op.
func (s *workoutPlanService) Delete(ctx context.Context, actor uuid.UUID, id string) error {
	planID, err := ParseID(id, "workout plan")
	if err != nil {
		return err
	}
	plan, err := s.repo.FindByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("find workout plan: %w", err)
	}
	if plan == nil || !ownedBy(plan.UserID, actor) {
		return nil
	}
	if err := s.repo.Delete(ctx, planID); err != nil {
		return fmt.Errorf("delete workout plan: %w", err)
	}
	return nil
}

func (s *workoutPlanService) owned(ctx context.Context, actor, id uuid.UUID) (*model.WorkoutPlan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find workout plan: %w", err)
	}
	if plan == nil || !ownedBy(plan.UserID, actor) {
		return nil, fmt.Errorf("workout plan not found: %w", apperrors.ErrNotFound)
	}
	return plan, nil
}

func ownedBy(owner *uuid.UUID, actor uuid.UUID) bool {
	return owner != nil && *owner == actor
}
