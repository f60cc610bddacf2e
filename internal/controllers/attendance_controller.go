package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tnmai/diemdanh_backend/internal/civildate"
	"github.com/tnmai/diemdanh_backend/internal/metrics"
	"github.com/tnmai/diemdanh_backend/internal/models"
	"github.com/tnmai/diemdanh_backend/internal/store"
)

type AttendanceController struct {
	Students   StudentStore
	Attendance AttendanceStore
	Settings   SettingStore
	Codec      *civildate.Codec
	Log        *zap.SugaredLogger
}

type markAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	IsAbsent  bool   `json:"is_absent"`
}

// List returns attendance records filtered by student, civil month and/or
// civil day, with dates decoded back to day strings.
func (ac *AttendanceController) List(c *gin.Context) {
	f := store.AttendanceFilter{StudentID: c.Query("student_id")}

	if month := c.Query("month"); month != "" {
		start, end, err := ac.Codec.MonthRange(month)
		if err != nil {
			respondError(c, http.StatusBadRequest, "month must be in YYYY-MM format")
			return
		}
		f.MonthStart, f.MonthEnd = &start, &end
	}
	if date := c.Query("date"); date != "" {
		instant, err := ac.Codec.EncodeDay(date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		f.Day = &instant
	}

	recs, err := ac.Attendance.Find(c.Request.Context(), f)
	if err != nil {
		ac.Log.Errorw("find attendance failed", "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch attendance records")
		return
	}

	out := make([]gin.H, 0, len(recs))
	for _, r := range recs {
		out = append(out, ac.recordView(&r))
	}
	respondOK(c, out)
}

// Mark records or toggles one student's attendance for one civil day. The
// single upsert covers both the first mark and later toggles; the fee
// snapshot is always refreshed to the setting in force right now.
func (ac *AttendanceController) Mark(c *gin.Context) {
	ctx := c.Request.Context()

	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "student_id and date are required")
		return
	}

	instant, err := ac.Codec.EncodeDay(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	st, err := ac.Students.ByID(ctx, req.StudentID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "student not found")
		return
	}
	if err != nil {
		ac.Log.Errorw("find student failed", "id", req.StudentID, "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch student")
		return
	}
	if st.DeletedAt.Valid {
		respondError(c, http.StatusNotFound, "student not found")
		return
	}

	fee, err := ac.Settings.DailyFee(ctx)
	if err != nil {
		ac.Log.Errorw("read daily fee failed", "err", err)
		respondError(c, http.StatusInternalServerError, "failed to read daily fee setting")
		return
	}

	rec, err := ac.Attendance.Upsert(ctx, st.ID, instant, req.IsAbsent, fee)
	if err != nil {
		ac.Log.Errorw("upsert attendance failed", "student_id", st.ID, "date", req.Date, "err", err)
		respondError(c, http.StatusInternalServerError, "failed to record attendance")
		return
	}

	metrics.AttendanceMarks.Inc()
	ac.Log.Infow("attendance marked",
		"student_id", st.ID, "date", req.Date, "is_absent", req.IsAbsent, "daily_fee", fee)
	respondOK(c, ac.recordView(rec))
}

func (ac *AttendanceController) recordView(r *models.AttendanceRecord) gin.H {
	return gin.H{
		"id":         r.ID,
		"student_id": r.StudentID,
		"date":       ac.Codec.DecodeDay(r.Date),
		"is_absent":  r.IsAbsent,
		"daily_fee":  r.DailyFee,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}
