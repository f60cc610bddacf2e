package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tnmai/diemdanh_backend/internal/models"
)

type StudentStore struct {
	db *gorm.DB
}

func NewStudentStore(db *gorm.DB) *StudentStore {
	return &StudentStore{db: db}
}

// List returns students ordered by name. With excludeDeleted the soft-deleted
// rows are dropped; otherwise every student ever created is included.
func (s *StudentStore) List(ctx context.Context, excludeDeleted bool) ([]models.Student, error) {
	q := s.db.WithContext(ctx).Order("name ASC")
	if !excludeDeleted {
		q = q.Unscoped()
	}
	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ByID returns the student even when soft-deleted; the caller decides whether
// a deleted student is acceptable for its command.
func (s *StudentStore) ByID(ctx context.Context, id string) (*models.Student, error) {
	var st models.Student
	err := s.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student %s: %w", id, err)
	}
	return &st, nil
}

func (s *StudentStore) Create(ctx context.Context, name string) (*models.Student, error) {
	st := models.Student{Name: name}
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return &st, nil
}

// UpdateName renames an active student. Soft-deleted students count as not
// found here.
func (s *StudentStore) UpdateName(ctx context.Context, id, name string) (*models.Student, error) {
	var st models.Student
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student %s: %w", id, err)
	}
	st.Name = name
	if err := s.db.WithContext(ctx).Save(&st).Error; err != nil {
		return nil, fmt.Errorf("update student %s: %w", id, err)
	}
	return &st, nil
}

// SoftDelete stamps deleted_at and reports when. Deleting an already deleted
// or unknown student is ErrNotFound.
func (s *StudentStore) SoftDelete(ctx context.Context, id string) (time.Time, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Student{})
	if res.Error != nil {
		return time.Time{}, fmt.Errorf("delete student %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return time.Time{}, ErrNotFound
	}
	st, err := s.ByID(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	return st.DeletedAt.Time, nil
}
