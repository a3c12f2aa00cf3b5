package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Performance is a dated body weight and lift measurement.
type Performance struct {
	ID           uuid.UUID       `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	Date         int64           `json:"date" gorm:"not null"` // unix milliseconds
	Weight       decimal.Decimal `json:"weight" gorm:"type:decimal(10,2);not null"`
	ExerciseName string          `json:"exerciseName" gorm:"size:255;not null"`
	Load         decimal.Decimal `json:"load" gorm:"type:decimal(10,2);not null"`
	Reps         int             `json:"reps" gorm:"not null"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Performance) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
