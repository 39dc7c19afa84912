package billing_test

import (
	"testing"
	"time"

	"github.com/sangkips/cueclub-api/internal/domain/billing"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestComputeMinutes_GraceIsAllOrNothing(t *testing.T) {
	policy := billing.RoundingPolicy{Step: 5, Mode: enum.RoundingModeCeil, GraceMinutes: 10}
	start := at(10, 0)

	for elapsed := time.Duration(0); elapsed <= 10*time.Minute; elapsed += 30 * time.Second {
		got := billing.ComputeMinutes(start, start.Add(elapsed), policy)
		assert.Equal(t, 0, got.BillableMinutes, "elapsed %s", elapsed)
	}

	got := billing.ComputeMinutes(start, start.Add(11*time.Minute), policy)
	assert.Equal(t, 11, got.RawMinutes)
	assert.Equal(t, 15, got.BillableMinutes)
}

func TestComputeMinutes_PartialMinuteCountsWhole(t *testing.T) {
	policy := billing.RoundingPolicy{Step: 1, Mode: enum.RoundingModeCeil}
	start := at(10, 0)

	got := billing.ComputeMinutes(start, start.Add(42*time.Minute+time.Second), policy)

	assert.Equal(t, 43, got.RawMinutes)
	assert.Equal(t, 43, got.BillableMinutes)
}

func TestComputeMinutes_NegativeSpanIsZero(t *testing.T) {
	start := at(10, 0)

	got := billing.ComputeMinutes(start, start.Add(-5*time.Minute), billing.DefaultRoundingPolicy())

	assert.Equal(t, billing.MinuteResult{}, got)
}

func TestComputeMinutes_Modes(t *testing.T) {
	start := at(10, 0)
	tests := []struct {
		mode enum.RoundingMode
		raw  int
		want int
	}{
		{enum.RoundingModeCeil, 42, 45},
		{enum.RoundingModeCeil, 45, 45},
		{enum.RoundingModeFloor, 44, 30},
		{enum.RoundingModeRound, 37, 30},
		{enum.RoundingModeRound, 38, 45},
		{enum.RoundingModeRound, 52, 45},
		{enum.RoundingMode("bogus"), 31, 45},
	}

	for _, tt := range tests {
		policy := billing.RoundingPolicy{Step: 15, Mode: tt.mode}
		got := billing.ComputeMinutes(start, start.Add(time.Duration(tt.raw)*time.Minute), policy)
		assert.Equal(t, tt.want, got.BillableMinutes, "%s %d", tt.mode, tt.raw)
	}
}

func TestComputeMinutes_StepOneKeepsRaw(t *testing.T) {
	start := at(10, 0)
	got := billing.ComputeMinutes(start, start.Add(7*time.Minute), billing.RoundingPolicy{Step: 1, Mode: enum.RoundingModeFloor})
	assert.Equal(t, 7, got.BillableMinutes)
}

func TestChargeForMinutes(t *testing.T) {
	assert.Equal(t, int64(37500), billing.ChargeForMinutes(50000, 45))
	assert.Equal(t, int64(5833), billing.ChargeForMinutes(50000, 7))
	assert.Equal(t, int64(1), billing.ChargeForMinutes(30, 1))
	assert.Equal(t, int64(0), billing.ChargeForMinutes(50000, 0))
	assert.Equal(t, int64(0), billing.ChargeForMinutes(0, 30))
}

func TestNormalizeRoundingStep(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 3: 1, 4: 5, 7: 5, 8: 10, 12: 10, 13: 15, 60: 15}
	for in, want := range tests {
		assert.Equal(t, want, billing.NormalizeRoundingStep(in), "step %d", in)
	}
}

func TestRoundingPolicy_Validate(t *testing.T) {
	assert.NoError(t, billing.DefaultRoundingPolicy().Validate())
	assert.ErrorIs(t, billing.RoundingPolicy{Step: 5, Mode: "up"}.Validate(), billing.ErrInvalidRoundingMode)
	assert.ErrorIs(t, billing.RoundingPolicy{Step: 5, Mode: enum.RoundingModeCeil, GraceMinutes: -1}.Validate(), billing.ErrNegativeGrace)
}

func TestRoundingPolicy_Normalize(t *testing.T) {
	p := billing.RoundingPolicy{Step: 12}.Normalize()
	assert.Equal(t, 10, p.Step)
	assert.Equal(t, enum.RoundingModeCeil, p.Mode)
}
