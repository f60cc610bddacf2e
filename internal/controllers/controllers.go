package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tnmai/diemdanh_backend/internal/models"
	"github.com/tnmai/diemdanh_backend/internal/store"
)

// Store interfaces consumed by the controllers. internal/store provides the
// gorm-backed implementations; tests substitute in-memory fakes.

type StudentStore interface {
	List(ctx context.Context, excludeDeleted bool) ([]models.Student, error)
	ByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, name string) (*models.Student, error)
	UpdateName(ctx context.Context, id, name string) (*models.Student, error)
	SoftDelete(ctx context.Context, id string) (time.Time, error)
}

type AttendanceStore interface {
	Find(ctx context.Context, f store.AttendanceFilter) ([]models.AttendanceRecord, error)
	Upsert(ctx context.Context, studentID string, date time.Time, isAbsent bool, dailyFee int) (*models.AttendanceRecord, error)
}

type SettingStore interface {
	Get(ctx context.Context, key string) (string, error)
	All(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value, description string) error
	DailyFee(ctx context.Context) (int, error)
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}
