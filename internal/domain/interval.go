package domain

import (
	"errors"
	"fmt"
	"time"
)

// ClockMinute is a time of day expressed as minutes from midnight.
type ClockMinute int

const MinutesPerDay ClockMinute = 24 * 60

var ErrInvalidInterval = errors.New("invalid interval")

// Interval is a half-open time range [Start, End) on a single calendar date.
type Interval struct {
	Date  time.Time
	Start ClockMinute
	End   ClockMinute
}

// DateOf normalizes t to UTC midnight. All persisted dates go through this.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(d), nil
}

func ParseClockMinute(s string) (ClockMinute, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return ClockMinute(t.Hour()*60 + t.Minute()), nil
}

func (m ClockMinute) String() string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func MinuteOf(t time.Time) ClockMinute {
	t = t.UTC()
	return ClockMinute(t.Hour()*60 + t.Minute())
}

func NewInterval(date time.Time, start, end ClockMinute) Interval {
	return Interval{Date: DateOf(date), Start: start, End: end}
}

// Validate enforces the interval invariant: start strictly before end,
// both within one calendar day. Cross-midnight ranges are rejected.
func (iv Interval) Validate() error {
	if iv.Start < 0 || iv.End > MinutesPerDay || iv.Start >= iv.End {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether two intervals share any instant. Intervals on
// different dates never overlap; on the same date the half-open rule
// applies, so back-to-back intervals do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if !iv.Date.Equal(other.Date) {
		return false
	}
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether the given instant falls inside the interval.
func (iv Interval) Contains(date time.Time, m ClockMinute) bool {
	return iv.Date.Equal(DateOf(date)) && m >= iv.Start && m < iv.End
}

// StartAt returns the interval start as an absolute instant.
func (iv Interval) StartAt() time.Time {
	return iv.Date.Add(time.Duration(iv.Start) * time.Minute)
}

// EndAt returns the interval end as an absolute instant.
func (iv Interval) EndAt() time.Time {
	return iv.Date.Add(time.Duration(iv.End) * time.Minute)
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s %s-%s", iv.Date.Format("2006-01-02"), iv.Start, iv.End)
}
