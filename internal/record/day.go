package record

import (
	"fmt"
	"time"
)

// DayLayout is the wire format of a calendar day.
const DayLayout = "2006-01-02"

// DefaultTimezone is the zone days are interpreted in unless configured otherwise.
const DefaultTimezone = "Asia/Seoul"

// LoadLocation resolves a timezone name, falling back to DefaultTimezone
// when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// FormatDay renders t as YYYY-MM-DD in loc, regardless of t's own zone.
func FormatDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// ValidateDay checks that s is a well-formed calendar day.
func ValidateDay(s string) error {
	_, err := ParseDay(s, time.UTC)
	return err
}

// Title renders the diary heading for t, e.g. "3월 5일 일지".
func Title(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%d월 %d일 일지", int(local.Month()), local.Day())
}

// ShiftDay moves t by n calendar days in loc, keeping midnight alignment.
func ShiftDay(t time.Time, n int, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, loc)
}
