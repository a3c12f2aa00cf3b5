package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workoutapi/internal/model"
)

// ExerciseRepository defines exercise persistence operations.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Exercise, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Exercise, error)
	// Update applies fields and returns the stored record, or nil if id is unknown.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Exercise, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a new exercise repository.
func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r *exerciseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&exercise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Exercise, error) {
	var exercises []model.Exercise
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Exercise, error) {
	var updated *model.Exercise
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Exercise{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		var exercise model.Exercise
		err := tx.Where("id = ?", id).First(&exercise).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		updated = &exercise
		return nil
	})
	return updated, err
}

func (r *exerciseRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Exercise{})
	return res.RowsAffected > 0, res.Error
}
