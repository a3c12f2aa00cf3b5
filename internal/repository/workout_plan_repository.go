package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workoutapi/internal/model"
)

// WorkoutPlanRepository defines workout plan persistence operations.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *model.WorkoutPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WorkoutPlan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WorkoutPlan, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.WorkoutPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workoutPlanRepository struct {
	db *gorm.DB
}

// NewWorkoutPlanRepository creates a new workout plan repository.
func NewWorkoutPlanRepository(db *gorm.DB) WorkoutPlanRepository {
	return &workoutPlanRepository{db: db}
}

func (r *workoutPlanRepository) Create(ctx context.Context, plan *model.WorkoutPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *workoutPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WorkoutPlan, error) {
	var plan model.WorkoutPlan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *workoutPlanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WorkoutPlan, error) {
	plans := []model.WorkoutPlan{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *workoutPlanRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.WorkoutPlan, error) {
	var updated *model.WorkoutPlan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.WorkoutPlan{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		var plan model.WorkoutPlan
		err := tx.Where("id = ?", id).First(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		updated = &plan
		return nil
	})
	return updated, err
}

func (r *workoutPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WorkoutPlan{}).Error
}
