package database

import (
	"log"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tnmai/diemdanh_backend/internal/models"
	"github.com/tnmai/diemdanh_backend/internal/store"
)

// SeedSettings creates the default settings on first boot. Existing values
// are never overwritten, so an operator-tuned fee survives restarts.
func SeedSettings(db *gorm.DB, defaultDailyFee int) error {
	defaults := []models.AppSetting{
		{Key: store.DailyFeeKey, Value: strconv.Itoa(defaultDailyFee), Description: "Học phí hàng ngày (VND)"},
		{Key: "app_name", Value: "Hệ thống điểm danh học sinh", Description: "Tên ứng dụng"},
	}
	for _, setting := range defaults {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedStudents inserts a sample roster into an empty database.
func SeedStudents(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Student{}).Unscoped().Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	names := []string{
		"Nguyễn Văn An",
		"Trần Thị Bình",
		"Lê Hoàng Cường",
		"Phạm Thị Dung",
		"Võ Minh Đức",
		"Ngô Thị Hoa",
	}
	for _, name := range names {
		if err := db.Create(&models.Student{Name: name}).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d sample students", len(names))
	return nil
}
