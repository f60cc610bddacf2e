package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tnmai/diemdanh_backend/internal/models"
)

// AttendanceFilter narrows a Find. Day matches one storage instant exactly;
// MonthStart/MonthEnd select the half-open interval [MonthStart, MonthEnd).
type AttendanceFilter struct {
	StudentID  string
	Day        *time.Time
	MonthStart *time.Time
	MonthEnd   *time.Time
}

type AttendanceStore struct {
	db *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

// Find returns matching records, newest day first.
func (s *AttendanceStore) Find(ctx context.Context, f AttendanceFilter) ([]models.AttendanceRecord, error) {
	q := s.db.WithContext(ctx).Order("date DESC")
	if f.StudentID != "" {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.Day != nil {
		q = q.Where("date = ?", *f.Day)
	}
	if f.MonthStart != nil && f.MonthEnd != nil {
		q = q.Where("date >= ? AND date < ?", *f.MonthStart, *f.MonthEnd)
	}
	var recs []models.AttendanceRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return recs, nil
}

// Upsert inserts or updates the single row keyed by (student_id, date) in one
// round trip. The unique index makes near-simultaneous marks for the same day
// collapse into one row; on conflict both is_absent and daily_fee are
// refreshed, so re-marking an old day re-prices it at the current rate.
func (s *AttendanceStore) Upsert(ctx context.Context, studentID string, date time.Time, isAbsent bool, dailyFee int) (*models.AttendanceRecord, error) {
	rec := models.AttendanceRecord{
		StudentID: studentID,
		Date:      date,
		IsAbsent:  isAbsent,
		DailyFee:  dailyFee,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_absent", "daily_fee", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}

	// Re-read so the caller gets the authoritative row (original id and
	// created_at when the upsert hit an existing record).
	var out models.AttendanceRecord
	err = s.db.WithContext(ctx).Where("student_id = ? AND date = ?", studentID, date).First(&out).Error
	if err != nil {
		return nil, fmt.Errorf("read back attendance: %w", err)
	}
	return &out, nil
}
