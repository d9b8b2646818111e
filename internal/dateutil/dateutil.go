// Package dateutil bridges the canonical calendar-date representation
// (ISO YYYY-MM-DD, anchored to the institutional time zone) and the
// dd/mm/yyyy display form, and computes the forward-looking week window
// used by the empty-room and booking views.
package dateutil

import (
	"fmt"
	"regexp"
	"time"
)

// DefaultTimezone anchors all calendar math when no other zone is configured.
const DefaultTimezone = "Asia/Dhaka"

const isoLayout = "2006-01-02"

var displayPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Day is one tile of the week window.
type Day struct {
	ISO     string `json:"iso"`
	Weekday string `json:"weekday"`
	DayNum  int    `json:"dayNum"`
}

// Calendar performs date arithmetic in a fixed institutional time zone.
type Calendar struct {
	loc *time.Location
}

// NewCalendar loads the named zone, falling back to the default institutional
// zone and finally to UTC.
func NewCalendar(timezone string) *Calendar {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
	}
	return &Calendar{loc: loc}
}

// TodayISO returns the current calendar date in the institutional zone.
func (c *Calendar) TodayISO() string {
	return time.Now().In(c.loc).Format(isoLayout)
}

// ParseISO parses an ISO calendar date in the institutional zone.
func (c *Calendar) ParseISO(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(isoLayout, iso, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", iso, err)
	}
	return t, nil
}

// WeekdayOf returns the full weekday name for an ISO date.
func (c *Calendar) WeekdayOf(iso string) (string, error) {
	t, err := c.ParseISO(iso)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// FormatDisplay renders an ISO date as dd/mm/yyyy for user display.
func (c *Calendar) FormatDisplay(iso string) (string, error) {
	t, err := c.ParseISO(iso)
	if err != nil {
		return "", err
	}
	return t.Format("02/01/2006"), nil
}

// ParseDisplay converts dd/mm/yyyy input back to ISO. The input is accepted
// only when it round-trips: parse, reformat, compare against the zero-padded
// original. Inputs that do not round-trip (e.g. 31/02/2025) are rejected and
// the caller keeps its last valid value.
func (c *Calendar) ParseDisplay(display string) (string, error) {
	m := displayPattern.FindStringSubmatch(display)
	if m == nil {
		return "", fmt.Errorf("invalid display date %q", display)
	}
	var dd, mm, yyyy int
	fmt.Sscanf(m[1], "%d", &dd)
	fmt.Sscanf(m[2], "%d", &mm)
	fmt.Sscanf(m[3], "%d", &yyyy)

	t := time.Date(yyyy, time.Month(mm), dd, 0, 0, 0, 0, c.loc)
	iso := t.Format(isoLayout)

	rt, err := c.FormatDisplay(iso)
	if err != nil {
		return "", err
	}
	if rt != fmt.Sprintf("%02d/%02d/%04d", dd, mm, yyyy) {
		return "", fmt.Errorf("display date %q does not round-trip", display)
	}
	return iso, nil
}

// WeekWindow returns the 7 days of the Saturday-starting week containing the
// anchor, with any day strictly before the anchor shifted forward by exactly
// 7 days. The visible window therefore always starts at the anchor and spans
// forward, never showing a day in the past relative to the anchor.
func (c *Calendar) WeekWindow(anchorISO string) ([]Day, error) {
	anchor, err := c.ParseISO(anchorISO)
	if err != nil {
		return nil, err
	}

	// Sunday=0 .. Saturday=6; distance back to the preceding Saturday.
	delta := (int(anchor.Weekday()) - int(time.Saturday) + 7) % 7
	start := anchor.AddDate(0, 0, -delta)

	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		if d.Before(anchor) {
			d = d.AddDate(0, 0, 7)
		}
		days = append(days, Day{
			ISO:     d.Format(isoLayout),
			Weekday: d.Weekday().String(),
			DayNum:  d.Day(),
		})
	}
	return days, nil
}
