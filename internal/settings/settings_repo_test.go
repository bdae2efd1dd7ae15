package settings_test

import (
	"context"
	"testing"

	"go-hrops/internal/settings"
	"go-hrops/internal/shared/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSettingsRepository_SaveUpserts(t *testing.T) {
	ctx := context.Background()
	repo := settings.NewRepository(testutil.NewSQLite(t, &settings.Settings{}))

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Save(ctx, &settings.Settings{FullDayHours: 8, HalfDayMinHours: 4, WorkdayStart: "09:00", WorkdayEnd: "18:00"}))
	require.NoError(t, repo.Save(ctx, &settings.Settings{FullDayHours: 7, HalfDayMinHours: 3, WorkdayStart: "08:00", WorkdayEnd: "16:00"}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.FullDayHours)
	assert.Equal(t, "08:00", got.WorkdayStart)
}
