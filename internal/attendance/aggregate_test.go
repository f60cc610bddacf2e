package attendance_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tnmai/diemdanh_backend/internal/attendance"
)

func marchRecords() []attendance.Record {
	return []attendance.Record{
		{StudentID: "s1", Day: "2025-03-01", IsAbsent: false, DailyFee: 70000},
		{StudentID: "s1", Day: "2025-03-02", IsAbsent: true, DailyFee: 70000},
		{StudentID: "s1", Day: "2025-03-03", IsAbsent: false, DailyFee: 80000},
	}
}

func TestSessionsInMonth(t *testing.T) {
	recs := marchRecords()

	assert.Equal(t, 2, attendance.SessionsInMonth("s1", "2025-03", recs))
	assert.Equal(t, 0, attendance.SessionsInMonth("s1", "2025-04", recs))
	assert.Equal(t, 0, attendance.SessionsInMonth("s2", "2025-03", recs))
	assert.Equal(t, 0, attendance.SessionsInMonth("s1", "2025-03", nil))
}

func TestTotalFeeInMonth(t *testing.T) {
	recs := marchRecords()

	// Absent days never contribute their snapshot.
	assert.Equal(t, 150000, attendance.TotalFeeInMonth("s1", "2025-03", recs))
	assert.Equal(t, 0, attendance.TotalFeeInMonth("s1", "2025-02", recs))
	assert.Equal(t, 0, attendance.TotalFeeInMonth("s2", "2025-03", recs))
}

func TestAggregatesGrowWithPresentDays(t *testing.T) {
	var recs []attendance.Record
	prevSessions, prevFee := 0, 0
	for day := 1; day <= 9; day++ {
		recs = append(recs, attendance.Record{
			StudentID: "s1",
			Day:       fmt.Sprintf("2025-03-%02d", day),
			DailyFee:  70000,
		})
		sessions := attendance.SessionsInMonth("s1", "2025-03", recs)
		fee := attendance.TotalFeeInMonth("s1", "2025-03", recs)
		assert.GreaterOrEqual(t, sessions, prevSessions)
		assert.GreaterOrEqual(t, fee, prevFee)
		prevSessions, prevFee = sessions, fee
	}
	assert.Equal(t, 9, prevSessions)
	assert.Equal(t, 9*70000, prevFee)
}

func TestStatusForDay(t *testing.T) {
	recs := marchRecords()

	assert.Equal(t, attendance.StatusPresent, attendance.StatusForDay("s1", "2025-03-01", recs))
	assert.Equal(t, attendance.StatusAbsent, attendance.StatusForDay("s1", "2025-03-02", recs))
	assert.Equal(t, attendance.StatusNone, attendance.StatusForDay("s1", "2025-03-05", recs))
	assert.Equal(t, attendance.StatusNone, attendance.StatusForDay("s2", "2025-03-01", recs))
}

func TestCanMarkPresentToday(t *testing.T) {
	today := "2025-03-10"

	// No record yet: allowed.
	assert.True(t, attendance.CanMarkPresentToday("s1", nil, today))

	// Already present: the guard blocks a duplicate mark.
	present := []attendance.Record{{StudentID: "s1", Day: today, IsAbsent: false, DailyFee: 70000}}
	assert.False(t, attendance.CanMarkPresentToday("s1", present, today))

	// Toggled to absent: allowed again.
	present[0].IsAbsent = true
	assert.True(t, attendance.CanMarkPresentToday("s1", present, today))
}

func TestIsPresentToday(t *testing.T) {
	today := "2025-03-10"
	recs := []attendance.Record{
		{StudentID: "s1", Day: today, IsAbsent: false},
		{StudentID: "s2", Day: today, IsAbsent: true},
	}

	assert.True(t, attendance.IsPresentToday("s1", recs, today))
	assert.False(t, attendance.IsPresentToday("s2", recs, today))
	assert.False(t, attendance.IsPresentToday("s3", recs, today))
}

func TestDistinctMonths(t *testing.T) {
	recs := []attendance.Record{
		{StudentID: "s1", Day: "2025-01-05"},
		{StudentID: "s1", Day: "2025-03-01"},
		{StudentID: "s2", Day: "2025-01-20"},
	}

	assert.Equal(t, []string{"2025-03", "2025-01"}, attendance.DistinctMonths(recs))
	assert.Empty(t, attendance.DistinctMonths(nil))
}
