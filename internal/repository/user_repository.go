package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "workoutapi/internal/errors"
	"workoutapi/internal/model"
)

// UserRepository is the credential store. Lookups return (nil, nil) when no
// account matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*model.User, error)
	// MarkVerified consumes token. It reports false when the token no longer
	// matches any account, e.g. because a concurrent request consumed it first.
	MarkVerified(ctx context.Context, id uuid.UUID, token string) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user. The unique index on email is the authoritative duplicate
// guard; a violation is reported as ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	return r.first(ctx, "verification_token = ?", token)
}

func (r *userRepository) MarkVerified(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND verification_token = ?", id, token).
		Updates(map[string]interface{}{
			"is_email_verified":       true,
			"verification_token":      gorm.Expr("NULL"),
			"verification_expires_at": gorm.Expr("NULL"),
		})
	if res.Error != nil {
		return false, fmt.Errorf("mark verified: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, fmt.Errorf("update user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *userRepository) first(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
