package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tnmai/diemdanh_backend/internal/metrics"
	"github.com/tnmai/diemdanh_backend/internal/version"
)

type HealthController struct {
	DB *gorm.DB
}

func (hc *HealthController) Health(c *gin.Context) {
	sqlDB, err := hc.DB.DB()
	if err == nil {
		start := time.Now()
		err = sqlDB.PingContext(c.Request.Context())
		metrics.ObserveDBPing(time.Since(start))
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}
