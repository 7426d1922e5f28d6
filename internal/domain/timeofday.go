package domain

import (
	"fmt"
	"regexp"
	"time"
)

// TimeOfDayLayout is the layout bookings use for start and finish times.
const TimeOfDayLayout = "15:04"

// halfHourGrid matches times on the hour or half hour, e.g. 09:00, 09:30, 23:30.
var halfHourGrid = regexp.MustCompile(`^([01][0-9]|2[0-3]):(00|30)$`)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses an HH:MM wall-clock time. Both fields must have two digits,
// so values are stored and sorted in one canonical form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(TimeOfDayLayout) {
		return 0, fmt.Errorf("parse time of day %q: want HH:MM", s)
	}
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// OnHalfHourGrid reports whether s is written as a whole or half hour.
func OnHalfHourGrid(s string) bool {
	return halfHourGrid.MatchString(s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns t shifted by d, truncated to whole minutes. The result does not wrap
// around midnight.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

func (t TimeOfDay) Before(o TimeOfDay) bool { return t < o }

func (t TimeOfDay) After(o TimeOfDay) bool { return t > o }

// WorkingHours is the inclusive window of the day in which bookings may lie.
type WorkingHours struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Default working hours window.
const (
	DefaultWorkingHoursStart = "09:00"
	DefaultWorkingHoursEnd   = "17:00"
)

// DefaultWorkingHours returns the 09:00-17:00 window.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: 9 * 60, End: 17 * 60}
}

// ParseWorkingHours builds a WorkingHours window from two HH:MM values on the half-hour grid.
func ParseWorkingHours(start, end string) (WorkingHours, error) {
	if !OnHalfHourGrid(start) || !OnHalfHourGrid(end) {
		return WorkingHours{}, fmt.Errorf("working hours %q-%q must be on the hour or half-hour", start, end)
	}
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return WorkingHours{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return WorkingHours{}, err
	}
	if e.Before(s) {
		return WorkingHours{}, fmt.Errorf("working hours end %s is before start %s", end, start)
	}
	return WorkingHours{Start: s, End: e}, nil
}

// Contains reports whether t lies inside the window, bounds included.
func (w WorkingHours) Contains(t TimeOfDay) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w WorkingHours) String() string {
	return w.Start.String() + "-" + w.End.String()
}
