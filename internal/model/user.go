package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxEmailLength and MaxUsernameLength bound what the users table can store.
const (
	MaxEmailLength    = 254
	MaxUsernameLength = 255
)

// EmailPattern is the address shape accepted at signup.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// User is a workout tracker account.
type User struct {
	ID              uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	Username        string    `json:"username" gorm:"size:255;not null"`
	Email           string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsEmailVerified bool      `json:"isEmailVerified" gorm:"not null;default:false"`
	// VerificationToken is NULL once consumed so it can never match a lookup again.
	VerificationToken     *string    `json:"-" gorm:"size:768;index"`
	VerificationExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the public projection returned after login.
type Profile struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Profile projects the account without any credential material.
func (u *User) Profile() Profile {
	return Profile{UserID: u.ID, Username: u.Username, Email: u.Email}
}
