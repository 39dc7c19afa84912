package billing

import (
	"errors"
	"time"

	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AllowedRoundingSteps are the rounding steps a venue may choose from.
var AllowedRoundingSteps = []int{1, 5, 10, 15}

var (
	ErrInvalidRoundingMode = errors.New("billing: rounding mode must be ceil, round or floor")
	ErrNegativeGrace       = errors.New("billing: grace minutes must not be negative")
)

// RoundingPolicy turns elapsed time into billable minutes.
type RoundingPolicy struct {
	Step         int               `json:"rounding_step"`
	Mode         enum.RoundingMode `json:"rounding_mode"`
	GraceMinutes int               `json:"grace_minutes"`
}

// DefaultRoundingPolicy bills in 5 minute steps, rounding up, without grace.
func DefaultRoundingPolicy() RoundingPolicy {
	return RoundingPolicy{Step: 5, Mode: enum.RoundingModeCeil, GraceMinutes: 0}
}

// NormalizeRoundingStep snaps step to the closest allowed step, preferring
// the smaller one on a tie.
func NormalizeRoundingStep(step int) int {
	best := AllowedRoundingSteps[0]
	for _, s := range AllowedRoundingSteps[1:] {
		if abs(s-step) < abs(best-step) {
			best = s
		}
	}
	return best
}

// Normalize returns the policy with its step snapped to an allowed value and
// an empty mode defaulted to ceil.
func (p RoundingPolicy) Normalize() RoundingPolicy {
	p.Step = NormalizeRoundingStep(p.Step)
	if p.Mode == "" {
		p.Mode = enum.RoundingModeCeil
	}
	return p
}

// Validate rejects unknown modes and negative grace periods.
func (p RoundingPolicy) Validate() error {
	if !p.Mode.IsValid() {
		return ErrInvalidRoundingMode
	}
	if p.GraceMinutes < 0 {
		return ErrNegativeGrace
	}
	return nil
}

// MinuteResult is the outcome of metering one session.
type MinuteResult struct {
	RawMinutes      int `json:"raw_minutes"`
	BillableMinutes int `json:"billable_minutes"`
}

// ComputeMinutes meters the time between start and end. Partial minutes
// count as whole ones; negative spans count as zero. Elapsed time at or under
// the grace period is free, anything above it is billed in full and snapped
// to the rounding step.
func ComputeMinutes(start, end time.Time, p RoundingPolicy) MinuteResult {
	var raw int
	if d := end.Sub(start); d > 0 {
		raw = int((d + time.Minute - 1) / time.Minute)
	}

	res := MinuteResult{RawMinutes: raw}
	switch {
	case raw <= p.GraceMinutes:
		res.BillableMinutes = 0
	case p.Step <= 1:
		res.BillableMinutes = raw
	default:
		res.BillableMinutes = roundToStep(raw, p.Step, p.Mode)
	}
	return res
}

func roundToStep(minutes, step int, mode enum.RoundingMode) int {
	switch mode {
	case enum.RoundingModeFloor:
		return minutes / step * step
	case enum.RoundingModeRound:
		return (2*minutes + step) / (2 * step) * step
	default:
		return (minutes + step - 1) / step * step
	}
}

// ChargeForMinutes prices billable minutes at an hourly rate, rounded to the
// nearest currency unit.
func ChargeForMinutes(ratePerHour int64, minutes int) int64 {
	if ratePerHour <= 0 || minutes <= 0 {
		return 0
	}
	return decimal.NewFromInt(ratePerHour).
		Mul(decimal.NewFromInt(int64(minutes))).
		Div(decimal.NewFromInt(60)).
		Round(0).
		IntPart()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
