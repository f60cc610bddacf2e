package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord is one student's state on one civil day. The composite
// unique index on (student_id, date) is the single source of truth for the
// one-row-per-day invariant; marking the same day again updates the row.
type AttendanceRecord struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	StudentID string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_student_date"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_attendance_student_date"` // UTC midnight of the civil day
	IsAbsent  bool      `gorm:"not null"`
	DailyFee  int       `gorm:"not null"` // fee snapshot taken when the day was recorded
	CreatedAt time.Time
	UpdatedAt time.Time

	Student *Student `gorm:"foreignKey:StudentID"`
}

func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
