package service

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "workoutapi/internal/errors"
)

// ParseID parses a path or body identifier, naming what in the error.
func ParseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s ID format", apperrors.ErrValidation, what)
	}
	return id, nil
}

func ensureSelf(actor, owner uuid.UUID) error {
	if actor != owner {
		return apperrors.ErrForbidden
	}
	return nil
}
