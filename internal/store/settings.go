package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tnmai/diemdanh_backend/internal/models"
)

// DailyFeeKey is the setting holding the per-session fee in VND.
const DailyFeeKey = "daily_fee"

type SettingStore struct {
	db              *gorm.DB
	defaultDailyFee int
}

func NewSettingStore(db *gorm.DB, defaultDailyFee int) *SettingStore {
	return &SettingStore{db: db, defaultDailyFee: defaultDailyFee}
}

func (s *SettingStore) Get(ctx context.Context, key string) (string, error) {
	var setting models.AppSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return setting.Value, nil
}

// All returns every setting as a key→value map, the shape the settings page
// consumes.
func (s *SettingStore) All(ctx context.Context) (map[string]string, error) {
	var settings []models.AppSetting
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

// Upsert creates the setting on first write and updates it thereafter. An
// empty description leaves any stored description untouched.
func (s *SettingStore) Upsert(ctx context.Context, key, value, description string) error {
	cols := []string{"value", "updated_at"}
	if description != "" {
		cols = append(cols, "description")
	}
	setting := models.AppSetting{Key: key, Value: value, Description: description}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

// DailyFee reads the current fee, falling back to the configured default when
// the setting is unset or not a number.
func (s *SettingStore) DailyFee(ctx context.Context) (int, error) {
	raw, err := s.Get(ctx, DailyFeeKey)
	if errors.Is(err, ErrNotFound) {
		return s.defaultDailyFee, nil
	}
	if err != nil {
		return 0, err
	}
	fee, convErr := strconv.Atoi(raw)
	if convErr != nil || fee <= 0 {
		return s.defaultDailyFee, nil
	}
	return fee, nil
}
