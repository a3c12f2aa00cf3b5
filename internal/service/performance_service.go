package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "workoutapi/internal/errors"
	"workoutapi/internal/events"
	"workoutapi/internal/model"
	"workoutapi/internal/repository"
)

// PerformanceInput is a new performance record.
type PerformanceInput struct {
	UserID       string
	Date         int64
	Weight       decimal.Decimal
	ExerciseName string
	Load         decimal.Decimal
	Reps         int
}

// PerformanceService records body weight and lift progress.
type PerformanceService interface {
	ListByUser(ctx context.Context, actor uuid.UUID, userID string) ([]model.Performance, error)
	Create(ctx context.Context, actor uuid.UUID, in PerformanceInput) (*model.Performance, error)
	Delete(ctx context.Context, actor uuid.UUID, id string) error
}

type performanceService struct {
	repo      repository.PerformanceRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewPerformanceService creates a new performance service.
func NewPerformanceService(repo repository.PerformanceRepository, publisher events.Publisher, logger zerolog.Logger) PerformanceService {
	return &performanceService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With().Str("component", "performance").Logger(),
	}
}

func (s *performanceService) ListByUser(ctx context.Context, actor uuid.UUID, userID string) ([]model.Performance, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if err := ensureSelf(actor, id); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list performance: %w", err)
	}
	return records, nil
}

func (s *performanceService) Create(ctx context.Context, actor uuid.UUID, in PerformanceInput) (*model.Performance, error) {
	if in.UserID == "" || in.Date == 0 || in.ExerciseName == "" || in.Reps == 0 {
		return nil, fmt.Errorf("%w: userId, date, exerciseName and reps are required", apperrors.ErrValidation)
	}
	userID, err := ParseID(in.UserID, "user")
	if err != nil {
		return nil, err
	}
	if err := ensureSelf(actor, userID); err != nil {
		return nil, err
	}

	record := &model.Performance{
		UserID:       userID,
		Date:         in.Date,
		Weight:       in.Weight,
		ExerciseName: in.ExerciseName,
		Load:         in.Load,
		Reps:         in.Reps,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save performance: %w", err)
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:    events.PerformanceRecorded,
		Key:     userID.String(),
		Payload: record,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("event not published")
	}
	return record, nil
}

// Delete is idempotent; records of other users are left alone.
func (s *performanceService) Delete(ctx context.Context, actor uuid.UUID, id string) error {
	recordID, err := ParseID(id, "performance")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, recordID, actor); err != nil {
		return fmt.Errorf("delete performance: %w", err)
	}
	return nil
}
