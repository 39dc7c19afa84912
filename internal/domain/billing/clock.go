package billing

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("billing: time of day must be HH:MM between 00:00 and 23:59")
	ErrInvalidWeekday   = errors.New("billing: weekday must be between 0 (Sunday) and 6 (Saturday)")
)

// ParseTimeOfDay parses "HH:MM" into minutes after midnight.
func ParseTimeOfDay(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeOfDay
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidTimeOfDay
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return h*60 + m, nil
}

// MinuteOfDay returns the minutes elapsed since midnight in t's location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Window is an intraday interval [From, To) in "HH:MM". From > To wraps
// past midnight; From == To covers the whole day.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Validate checks both bounds.
func (w Window) Validate() error {
	if _, err := ParseTimeOfDay(w.From); err != nil {
		return fmt.Errorf("from %q: %w", w.From, err)
	}
	if _, err := ParseTimeOfDay(w.To); err != nil {
		return fmt.Errorf("to %q: %w", w.To, err)
	}
	return nil
}

// Contains reports whether at's local time of day falls in the window.
// A malformed window contains nothing.
func (w Window) Contains(at time.Time) bool {
	from, err := ParseTimeOfDay(w.From)
	if err != nil {
		return false
	}
	to, err := ParseTimeOfDay(w.To)
	if err != nil {
		return false
	}
	cur := MinuteOfDay(at)
	switch {
	case from == to:
		return true
	case from < to:
		return cur >= from && cur < to
	default:
		return cur >= from || cur < to
	}
}

// Weekdays is a set of days, 0 = Sunday. Empty matches every day.
type Weekdays []int

// Contains reports whether at's local weekday is in the set.
func (d Weekdays) Contains(at time.Time) bool {
	if len(d) == 0 {
		return true
	}
	wd := int(at.Weekday())
	for _, day := range d {
		if day == wd {
			return true
		}
	}
	return false
}

// Validate rejects days outside 0..6.
func (d Weekdays) Validate() error {
	for _, day := range d {
		if day < 0 || day > 6 {
			return ErrInvalidWeekday
		}
	}
	return nil
}
