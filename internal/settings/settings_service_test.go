package settings_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go-hrops/internal/attendance"
	"go-hrops/internal/domain"
	"go-hrops/internal/rbac"
	"go-hrops/internal/settings"
	settingserrors "go-hrops/internal/settings/errors"
	"go-hrops/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepository struct {
	getFn  func(ctx context.Context) (*settings.Settings, error)
	saveFn func(ctx context.Context, s *settings.Settings) error
}

func (f *fakeRepository) Get(ctx context.Context) (*settings.Settings, error) {
	return f.getFn(ctx)
}

func (f *fakeRepository) Save(ctx context.Context, s *settings.Settings) error {
	return f.saveFn(ctx, s)
}

var defaults = settings.Defaults{FullDayHours: 8, HalfDayMinHours: 4, WorkdayStart: "09:00", WorkdayEnd: "18:00"}

func setupSettingsServiceTest(t *testing.T, repo *fakeRepository) settings.Service {
	t.Helper()
	policy, err := rbac.NewDefaultService(zap.NewNop())
	require.NoError(t, err)
	return settings.NewService(repo, policy, defaults, zap.NewNop())
}

func TestSettingsService_Thresholds(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing saved", func(t *testing.T) {
		svc := setupSettingsServiceTest(t, &fakeRepository{
			getFn: func(ctx context.Context) (*settings.Settings, error) { return nil, gorm.ErrRecordNotFound },
		})

		th, err := svc.Thresholds(ctx)
		require.NoError(t, err)
		assert.Equal(t, attendance.Thresholds{FullDayHours: 8, HalfDayMinHours: 4}, th)
	})

	t.Run("stored row wins", func(t *testing.T) {
		var reads int32
		svc := setupSettingsServiceTest(t, &fakeRepository{
			getFn: func(ctx context.Context) (*settings.Settings, error) {
				atomic.AddInt32(&reads, 1)
				return &settings.Settings{FullDayHours: 7, HalfDayMinHours: 3.5, WorkdayStart: "08:00", WorkdayEnd: "16:00"}, nil
			},
		})

		th, err := svc.Thresholds(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7.0, th.FullDayHours)
		assert.Equal(t, 3.5, th.HalfDayMinHours)
		assert.Equal(t, int32(1), atomic.LoadInt32(&reads))
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("db down")
		svc := setupSettingsServiceTest(t, &fakeRepository{
			getFn: func(ctx context.Context) (*settings.Settings, error) { return nil, boom },
		})

		_, err := svc.Thresholds(ctx)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: 1, Role: domain.Predefined(domain.RoleAdmin)}
	valid := settings.UpdateSettingsRequest{FullDayHours: 7.5, HalfDayMinHours: 3.5, WorkdayStart: "08:30", WorkdayEnd: "17:00"}

	t.Run("admin saves", func(t *testing.T) {
		var saved *settings.Settings
		svc := setupSettingsServiceTest(t, &fakeRepository{
			saveFn: func(ctx context.Context, s *settings.Settings) error {
				saved = s
				return nil
			},
		})

		res, err := svc.Update(ctx, admin, valid)
		require.NoError(t, err)
		assert.Equal(t, 7.5, res.FullDayHours)
		require.NotNil(t, saved.UpdatedBy)
		assert.Equal(t, uint(1), *saved.UpdatedBy)
	})

	t.Run("non admin forbidden", func(t *testing.T) {
		svc := setupSettingsServiceTest(t, &fakeRepository{})

		_, err := svc.Update(ctx, domain.Actor{ID: 2, Role: domain.Predefined(domain.RoleHROfficer)}, valid)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	cases := []struct {
		name string
		req  settings.UpdateSettingsRequest
		want error
	}{
		{"half not below full", settings.UpdateSettingsRequest{FullDayHours: 4, HalfDayMinHours: 4, WorkdayStart: "09:00", WorkdayEnd: "17:00"}, settingserrors.ErrInvalidThresholds},
		{"full above 24", settings.UpdateSettingsRequest{FullDayHours: 25, HalfDayMinHours: 4, WorkdayStart: "09:00", WorkdayEnd: "17:00"}, settingserrors.ErrInvalidThresholds},
		{"end before start", settings.UpdateSettingsRequest{FullDayHours: 8, HalfDayMinHours: 4, WorkdayStart: "18:00", WorkdayEnd: "09:00"}, settingserrors.ErrInvalidWorkingHours},
		{"bad clock", settings.UpdateSettingsRequest{FullDayHours: 8, HalfDayMinHours: 4, WorkdayStart: "9am", WorkdayEnd: "17:00"}, settingserrors.ErrInvalidWorkingHours},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := setupSettingsServiceTest(t, &fakeRepository{})

			_, err := svc.Update(ctx, admin, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
