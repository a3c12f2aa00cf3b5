package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkoutPlan assigns a titled session to a day of the week.
type WorkoutPlan struct {
	ID     uuid.UUID  `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID *uuid.UUID `json:"userId,omitempty" gorm:"type:char(36);index"`
	Title  string     `json:"title" gorm:"size:255;not null"`
	Day    string     `json:"day" gorm:"size:32;not null"`
}

// BeforeCreate sets UUID before creating the record.
func (w *WorkoutPlan) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
