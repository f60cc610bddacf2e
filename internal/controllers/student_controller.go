package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tnmai/diemdanh_backend/internal/attendance"
	"github.com/tnmai/diemdanh_backend/internal/civildate"
	"github.com/tnmai/diemdanh_backend/internal/models"
	"github.com/tnmai/diemdanh_backend/internal/store"
)

type StudentController struct {
	Students   StudentStore
	Attendance AttendanceStore
	Codec      *civildate.Codec
	Log        *zap.SugaredLogger
}

type studentNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type studentListItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SessionsInMonth int    `json:"sessions_in_month"`
	TotalFeeInMonth int    `json:"total_fee_in_month"`
	IsPresentToday  bool   `json:"is_present_today"`
	CanMarkPresent  bool   `json:"can_mark_present"`
}

type attendanceRecordView struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Date      string    `json:"date"`
	IsAbsent  bool      `json:"is_absent"`
	DailyFee  int       `json:"daily_fee"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns every active student with its attendance view-model for the
// selected month (current civil month by default).
func (sc *StudentController) List(c *gin.Context) {
	ctx := c.Request.Context()

	month := c.DefaultQuery("month", sc.Codec.CurrentMonth())
	monthStart, monthEnd, err := sc.Codec.MonthRange(month)
	if err != nil {
		respondError(c, http.StatusBadRequest, "month must be in YYYY-MM format")
		return
	}

	students, err := sc.Students.List(ctx, true)
	if err != nil {
		sc.Log.Errorw("list students failed", "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch students")
		return
	}

	monthRecs, err := sc.Attendance.Find(ctx, store.AttendanceFilter{MonthStart: &monthStart, MonthEnd: &monthEnd})
	if err != nil {
		sc.Log.Errorw("list attendance failed", "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch attendance records")
		return
	}

	today := sc.Codec.Today()
	todayInstant, err := sc.Codec.EncodeDay(today)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to resolve current day")
		return
	}
	todayRecs, err := sc.Attendance.Find(ctx, store.AttendanceFilter{Day: &todayInstant})
	if err != nil {
		sc.Log.Errorw("list today attendance failed", "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch attendance records")
		return
	}

	monthView := sc.decode(monthRecs)
	todayView := sc.decode(todayRecs)

	out := make([]studentListItem, 0, len(students))
	for _, st := range students {
		out = append(out, studentListItem{
			ID:              st.ID,
			Name:            st.Name,
			SessionsInMonth: attendance.SessionsInMonth(st.ID, month, monthView),
			TotalFeeInMonth: attendance.TotalFeeInMonth(st.ID, month, monthView),
			IsPresentToday:  attendance.IsPresentToday(st.ID, todayView, today),
			CanMarkPresent:  attendance.CanMarkPresentToday(st.ID, todayView, today),
		})
	}
	respondOK(c, gin.H{"month": month, "students": out})
}

// Get returns one student's detail view: decoded records, the months that
// have data, and the aggregates plus per-day statuses for the selected month.
func (sc *StudentController) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := strings.TrimSpace(c.Param("id"))

	st, err := sc.Students.ByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "student not found")
		return
	}
	if err != nil {
		sc.Log.Errorw("find student failed", "id", id, "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch student")
		return
	}
	if st.DeletedAt.Valid {
		respondError(c, http.StatusNotFound, "student not found")
		return
	}

	recs, err := sc.Attendance.Find(ctx, store.AttendanceFilter{StudentID: st.ID})
	if err != nil {
		sc.Log.Errorw("find attendance failed", "student_id", st.ID, "err", err)
		respondError(c, http.StatusInternalServerError, "failed to fetch attendance records")
		return
	}
	decoded := sc.decode(recs)

	months := attendance.DistinctMonths(decoded)
	month := c.Query("month")
	if month == "" {
		// Default to the current month, or the newest month with data when
		// the current one has none.
		month = sc.Codec.CurrentMonth()
		if len(months) > 0 && !contains(months, month) {
			month = months[0]
		}
	} else if _, _, err := sc.Codec.MonthRange(month); err != nil {
		respondError(c, http.StatusBadRequest, "month must be in YYYY-MM format")
		return
	}

	dayStatuses := make(map[string]attendance.DayStatus)
	for _, r := range decoded {
		if strings.HasPrefix(r.Day, month+"-") {
			dayStatuses[r.Day] = attendance.StatusForDay(st.ID, r.Day, decoded)
		}
	}

	respondOK(c, gin.H{
		"student": gin.H{
			"id":         st.ID,
			"name":       st.Name,
			"created_at": st.CreatedAt,
			"updated_at": st.UpdatedAt,
		},
		"records":            sc.views(recs),
		"months":             months,
		"month":              month,
		"sessions_in_month":  attendance.SessionsInMonth(st.ID, month, decoded),
		"total_fee_in_month": attendance.TotalFeeInMonth(st.ID, month, decoded),
		"day_statuses":       dayStatuses,
	})
}

func (sc *StudentController) Create(c *gin.Context) {
	var req studentNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		respondError(c, http.StatusBadRequest, "name must be at least 2 characters long")
		return
	}

	st, err := sc.Students.Create(c.Request.Context(), name)
	if err != nil {
		sc.Log.Errorw("create student failed", "err", err)
		respondError(c, http.StatusInternalServerError, "failed to create student")
		return
	}
	sc.Log.Infow("student created", "id", st.ID)
	respondCreated(c, gin.H{
		"id":         st.ID,
		"name":       st.Name,
		"created_at": st.CreatedAt,
		"updated_at": st.UpdatedAt,
	})
}

func (sc *StudentController) Update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req studentNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		respondError(c, http.StatusBadRequest, "name must be at least 2 characters long")
		return
	}

	st, err := sc.Students.UpdateName(c.Request.Context(), id, name)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "student not found")
		return
	}
	if err != nil {
		sc.Log.Errorw("update student failed", "id", id, "err", err)
		respondError(c, http.StatusInternalServerError, "failed to update student")
		return
	}
	respondOK(c, gin.H{
		"id":         st.ID,
		"name":       st.Name,
		"created_at": st.CreatedAt,
		"updated_at": st.UpdatedAt,
	})
}

func (sc *StudentController) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	deletedAt, err := sc.Students.SoftDelete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "student not found")
		return
	}
	if err != nil {
		sc.Log.Errorw("delete student failed", "id", id, "err", err)
		respondError(c, http.StatusInternalServerError, "failed to delete student")
		return
	}
	sc.Log.Infow("student soft-deleted", "id", id)
	respondOK(c, gin.H{"id": id, "deleted_at": deletedAt})
}

func (sc *StudentController) decode(recs []models.AttendanceRecord) []attendance.Record {
	out := make([]attendance.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, attendance.Record{
			StudentID: r.StudentID,
			Day:       sc.Codec.DecodeDay(r.Date),
			IsAbsent:  r.IsAbsent,
			DailyFee:  r.DailyFee,
		})
	}
	return out
}

func (sc *StudentController) views(recs []models.AttendanceRecord) []attendanceRecordView {
	out := make([]attendanceRecordView, 0, len(recs))
	for _, r := range recs {
		out = append(out, attendanceRecordView{
			ID:        r.ID,
			StudentID: r.StudentID,
			Date:      sc.Codec.DecodeDay(r.Date),
			IsAbsent:  r.IsAbsent,
			DailyFee:  r.DailyFee,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}
