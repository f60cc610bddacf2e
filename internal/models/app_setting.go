package models

import "time"

// AppSetting stores operational key/value settings managed via the settings
// page. Numeric settings (the daily fee) are kept as text and parsed on read.
type AppSetting struct {
	Key         string `gorm:"size:128;primaryKey"`
	Value       string `gorm:"type:text"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
