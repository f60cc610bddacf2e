package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tnmai/diemdanh_backend/internal/store"
)

// maxDailyFee caps the daily fee accepted from the settings page.
const maxDailyFee = 1000000

type SettingsController struct {
	Settings SettingStore
	Log      *zap.SugaredLogger
}

type upsertSettingRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

// List returns all settings as a key→value object.
func (sc *SettingsController) List(c *gin.Context) {
	settings, err := sc.Settings.All(c.Request.Context())
	if err != nil {
		sc.Log.Errorw("list settings failed", "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	respondOK(c, settings)
}

// Upsert creates or updates one setting. The daily fee is validated here; the
// storage layer keeps it as text.
func (sc *SettingsController) Upsert(c *gin.Context) {
	var req upsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "key and value are required")
		return
	}

	if req.Key == store.DailyFeeKey {
		fee, err := strconv.Atoi(req.Value)
		if err != nil || fee <= 0 || fee > maxDailyFee {
			respondError(c, http.StatusBadRequest, "daily_fee must be a positive integer not greater than 1000000")
			return
		}
	}

	if err := sc.Settings.Upsert(c.Request.Context(), req.Key, req.Value, req.Description); err != nil {
		sc.Log.Errorw("upsert setting failed", "key", req.Key, "err", err)
		respondError(c, http.StatusInternalServerError, "failed to update setting")
		return
	}
	sc.Log.Infow("setting updated", "key", req.Key)
	respondOK(c, gin.H{"key": req.Key, "value": req.Value})
}
