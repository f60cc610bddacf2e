package attendance

import (
	"sort"
	"strings"
)

// Record is an attendance snapshot whose date has already been decoded to a
// civil day string. Aggregation works on these snapshots only; it never touches
// storage or the live fee setting.
type Record struct {
	StudentID string
	Day       string // YYYY-MM-DD
	IsAbsent  bool
	DailyFee  int
}

// DayStatus is the per-calendar-day attendance state used by calendar views.
type DayStatus string

const (
	StatusNone    DayStatus = "none"
	StatusPresent DayStatus = "present"
	StatusAbsent  DayStatus = "absent"
)

// SessionsInMonth counts the days in the given civil month on which the
// student was marked present. A day with only an absence record is not a
// session.
func SessionsInMonth(studentID, month string, records []Record) int {
	n := 0
	for _, r := range records {
		if r.StudentID == studentID && inMonth(r.Day, month) && !r.IsAbsent {
			n++
		}
	}
	return n
}

// TotalFeeInMonth sums the stored fee snapshots of the student's present days
// in the given civil month. Each record's own snapshot is used, never the
// live setting.
func TotalFeeInMonth(studentID, month string, records []Record) int {
	total := 0
	for _, r := range records {
		if r.StudentID == studentID && inMonth(r.Day, month) && !r.IsAbsent {
			total += r.DailyFee
		}
	}
	return total
}

// StatusForDay reports the student's state on one civil day.
func StatusForDay(studentID, day string, records []Record) DayStatus {
	rec, ok := findForDay(studentID, day, records)
	switch {
	case !ok:
		return StatusNone
	case rec.IsAbsent:
		return StatusAbsent
	default:
		return StatusPresent
	}
}

// CanMarkPresentToday is the idempotence guard for the "mark present"
// command: allowed when today has no record yet, or when today's record is an
// absence that may be toggled.
func CanMarkPresentToday(studentID string, records []Record, today string) bool {
	rec, ok := findForDay(studentID, today, records)
	return !ok || rec.IsAbsent
}

// IsPresentToday reports whether the student has a present record for today.
func IsPresentToday(studentID string, records []Record, today string) bool {
	rec, ok := findForDay(studentID, today, records)
	return ok && !rec.IsAbsent
}

// DistinctMonths projects every record to its civil month and returns the
// de-duplicated months, newest first. Used to populate month selectors.
func DistinctMonths(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	months := make([]string, 0, len(records))
	for _, r := range records {
		if len(r.Day) < 7 {
			continue
		}
		m := r.Day[:7]
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

func inMonth(day, month string) bool {
	return strings.HasPrefix(day, month+"-")
}

func findForDay(studentID, day string, records []Record) (Record, bool) {
	for _, r := range records {
		if r.StudentID == studentID && r.Day == day {
			return r, true
		}
	}
	return Record{}, false
}
