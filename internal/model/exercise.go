package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Exercise is one logged lift: a title, a load and a rep count.
type Exercise struct {
	ID        uuid.UUID       `json:"_id" gorm:"type:char(36);primaryKey"`
	Title     string          `json:"title" gorm:"size:255;not null"`
	Load      decimal.Decimal `json:"load" gorm:"type:decimal(10,2);not null"`
	Reps      int             `json:"reps" gorm:"not null"`
	UserID    uuid.UUID       `json:"user" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TableName keeps the collection name used by existing clients.
func (Exercise) TableName() string {
	return "gyms"
}

// BeforeCreate sets UUID before creating the record.
func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
