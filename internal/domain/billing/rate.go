package billing

import (
	"fmt"
	"time"

	"github.com/sangkips/cueclub-api/internal/domain/enum"
)

// RateWindow is one entry of a table type's day/time rate schedule.
type RateWindow struct {
	Days        Weekdays `json:"days,omitempty"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	RatePerHour int64    `json:"rate_per_hour"`
}

// Validate checks days, bounds and rate.
func (w RateWindow) Validate() error {
	if err := w.Days.Validate(); err != nil {
		return err
	}
	if err := (Window{From: w.From, To: w.To}).Validate(); err != nil {
		return err
	}
	if w.RatePerHour < 0 {
		return fmt.Errorf("billing: rate per hour must not be negative")
	}
	return nil
}

// Matches reports whether the entry applies at the given instant.
func (w RateWindow) Matches(at time.Time) bool {
	return w.Days.Contains(at) && Window{From: w.From, To: w.To}.Contains(at)
}

// TableRates gathers every pricing input of one table: its own override and
// its type's schedule and base rate.
type TableRates struct {
	Override *int64
	Schedule []RateWindow
	BaseRate int64
}

// Rate is a resolved hourly rate and the tier it came from.
type Rate struct {
	PerHour int64           `json:"rate_per_hour"`
	Source  enum.RateSource `json:"rate_source"`
}

// ResolveRate picks the hourly rate in effect at the given instant: the table
// override, else the first matching schedule entry, else the base rate.
// Day and time matching use at's location.
func ResolveRate(r TableRates, at time.Time) Rate {
	if r.Override != nil && *r.Override >= 0 {
		return Rate{PerHour: *r.Override, Source: enum.RateSourceOverride}
	}
	for _, w := range r.Schedule {
		if w.Matches(at) {
			return Rate{PerHour: w.RatePerHour, Source: enum.RateSourceSchedule}
		}
	}
	base := r.BaseRate
	if base < 0 {
		base = 0
	}
	return Rate{PerHour: base, Source: enum.RateSourceBase}
}
