package service_test

import (
	"context"
	"testing"
	_ "time/tzdata"

	"github.com/sangkips/cueclub-api/internal/application/service"
	"github.com/sangkips/cueclub-api/internal/domain/enum"
	"github.com/sangkips/cueclub-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettingsInput() *service.UpdateSettingsInput {
	return &service.UpdateSettingsInput{
		Name:         "Corner Pocket",
		Timezone:     "Asia/Ho_Chi_Minh",
		RoundingStep: 12,
		RoundingMode: enum.RoundingModeRound,
		GraceMinutes: 3,
		PaperSize:    "58mm",
		PrintCopies:  2,
	}
}

func TestSettingsService_UpdateSnapsStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updated, err := f.settings.UpdateSettings(ctx, validSettingsInput())
	require.NoError(t, err)

	assert.Equal(t, 10, updated.RoundingStep)
	assert.Equal(t, enum.RoundingModeRound, updated.RoundingMode)
	assert.Equal(t, "Asia/Ho_Chi_Minh", updated.Location().String())

	stored, err := f.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Pocket", stored.Name)
	assert.Equal(t, 2, stored.PrintCopies)
}

func TestSettingsService_UpdateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *service.UpdateSettingsInput)
	}{
		{"missing name", func(in *service.UpdateSettingsInput) { in.Name = " " }},
		{"unknown mode", func(in *service.UpdateSettingsInput) { in.RoundingMode = "up" }},
		{"negative grace", func(in *service.UpdateSettingsInput) { in.GraceMinutes = -1 }},
		{"unknown timezone", func(in *service.UpdateSettingsInput) { in.Timezone = "Mars/Olympus" }},
		{"paper size", func(in *service.UpdateSettingsInput) { in.PaperSize = "A4" }},
		{"negative copies", func(in *service.UpdateSettingsInput) { in.PrintCopies = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validSettingsInput()
			tt.mutate(in)

			_, err := f.settings.UpdateSettings(context.Background(), in)
			assertKind(t, err, apperror.KindValidation)
		})
	}
}

func TestSettingsService_PolicyIsFrozenPerSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, f.tableType(t, "Pool", 60000).ID, "T1")
	session := f.open(t, table.ID, at(10, 0))

	in := validSettingsInput()
	in.Timezone = "UTC"
	in.RoundingStep = 1
	in.GraceMinutes = 0
	_, err := f.settings.UpdateSettings(ctx, in)
	require.NoError(t, err)

	// 10:00 to 10:42 still bills 45 minutes under the policy captured at check-in.
	end := at(10, 42)
	preview, err := f.sessions.PreviewClose(ctx, session.ID, &end)
	require.NoError(t, err)
	assert.Equal(t, 45, preview.BillableMinutes)
	assert.Equal(t, int64(45000), preview.PlayAmount)
}
