package civildate

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DayLayout is the civil day wire format.
	DayLayout = "2006-01-02"
	// MonthLayout is the civil month wire format.
	MonthLayout = "2006-01"
)

// ErrInvalidDate is returned for strings that do not parse as a civil day or
// month. Callers must not coerce malformed input into a fallback date.
var ErrInvalidDate = errors.New("invalid date format")

// Codec translates between calendar days in a fixed civil timezone and the
// UTC-midnight instants used for storage. The timezone and the clock are both
// injected so "today" can be pinned in tests.
type Codec struct {
	loc *time.Location
	now func() time.Time
}

// New builds a Codec for the named IANA timezone. A nil clock falls back to
// the real one.
func New(timezone string, now func() time.Time) (*Codec, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{loc: loc, now: now}, nil
}

// EncodeDay maps "YYYY-MM-DD" to midnight UTC of that same calendar date.
// The string is authoritative: no conversion through the local offset takes
// place, otherwise any wall-clock time before the offset would roll the
// stored date back by one day.
func (c *Codec) EncodeDay(day string) (time.Time, error) {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}
	return t.UTC(), nil
}

// DecodeDay returns the UTC calendar date of a stored instant as a civil day
// string. DecodeDay(EncodeDay(s)) == s for every valid s.
func (c *Codec) DecodeDay(instant time.Time) string {
	return instant.UTC().Format(DayLayout)
}

// MonthRange returns the half-open storage interval [start, end) covering
// every day of the civil month "YYYY-MM".
func (c *Codec) MonthRange(month string) (start, end time.Time, err error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, month)
	}
	start = t.UTC()
	return start, start.AddDate(0, 1, 0), nil
}

// Now is the current wall-clock reading in the configured timezone.
func (c *Codec) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the current civil day string.
func (c *Codec) Today() string {
	return c.Now().Format(DayLayout)
}

// CurrentMonth is the current civil month string.
func (c *Codec) CurrentMonth() string {
	return c.Now().Format(MonthLayout)
}
