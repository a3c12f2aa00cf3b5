package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workoutapi/internal/model"
)

// PerformanceRepository defines performance record persistence operations.
type PerformanceRepository interface {
	Create(ctx context.Context, performance *model.Performance) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Performance, error)
	// Delete removes the record only if it belongs to userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type performanceRepository struct {
	db *gorm.DB
}

// NewPerformanceRepository creates a new performance repository.
func NewPerformanceRepository(db *gorm.DB) PerformanceRepository {
	return &performanceRepository{db: db}
}

func (r *performanceRepository) Create(ctx context.Context, performance *model.Performance) error {
	return r.db.WithContext(ctx).Create(performance).Error
}

// ListByUser returns records oldest first.
func (r *performanceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Performance, error) {
	records := []model.Performance{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *performanceRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Performance{}).Error
}
