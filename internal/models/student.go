package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is a tracked pupil. Rows are never hard-deleted: DeletedAt marks the
// student as removed while keeping historical attendance addressable by id.
type Student struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Student) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
