package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrops/internal/attendance"
	attendanceerrors "go-hrops/internal/attendance/errors"
	"go-hrops/internal/domain"
	"go-hrops/internal/rbac"
	"go-hrops/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn            func(ctx context.Context, a *attendance.Attendance) error
	findByIDFn          func(ctx context.Context, id uint) (*attendance.Attendance, error)
	findByUserAndDateFn func(ctx context.Context, userID uint, date time.Time) (*attendance.Attendance, error)
	findAllFn           func(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error)
	updateFn            func(ctx context.Context, a *attendance.Attendance) error
	userExistsFn        func(ctx context.Context, userID uint) (bool, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn == nil {
		a.ID = 1
		return nil
	}
	return f.createFn(ctx, a)
}

func (f *fakeRepository) FindByID(ctx context.Context, id uint) (*attendance.Attendance, error) {
	if f.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepository) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*attendance.Attendance, error) {
	if f.findByUserAndDateFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByUserAndDateFn(ctx, userID, date)
}

func (f *fakeRepository) FindAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	return f.findAllFn(ctx, filter)
}

func (f *fakeRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, a)
}

func (f *fakeRepository) UserExists(ctx context.Context, userID uint) (bool, error) {
	if f.userExistsFn == nil {
		return true, nil
	}
	return f.userExistsFn(ctx, userID)
}

type staticThresholds attendance.Thresholds

func (s staticThresholds) Thresholds(ctx context.Context) (attendance.Thresholds, error) {
	return attendance.Thresholds(s), nil
}

type serviceDeps struct {
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo *fakeRepository
	svc  attendance.Service
}

func setupAttendanceServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	policy, err := rbac.NewDefaultService(zap.NewNop())
	require.NoError(t, err)

	repo := &fakeRepository{}
	svc := attendance.NewService(db, repo, policy, staticThresholds(attendance.DefaultThresholds()), time.UTC, zap.NewNop())
	return &serviceDeps{db: db, mock: mock, repo: repo, svc: svc}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func employee(id uint) domain.Actor {
	return domain.Actor{ID: id, Role: domain.Predefined(domain.RoleEmployee)}
}

func manager(id uint) domain.Actor {
	return domain.Actor{ID: id, Role: domain.Predefined(domain.RoleManager)}
}

func at(hour, minute int) *time.Time {
	v := time.Date(2025, 3, 3, hour, minute, 0, 0, time.UTC)
	return &v
}

func strPtr(s string) *string { return &s }

func TestAttendanceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("employee checks in for self", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)

		var saved *attendance.Attendance
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			a.ID = 10
			saved = a
			return nil
		}

		res, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{
			Date:    "2025-03-03",
			CheckIn: at(9, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, uint(5), saved.UserID)
		assert.Equal(t, "2025-03-03", res.Date)
		assert.Equal(t, "Present", res.Status)
		assert.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("defaults to today and now", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)

		res, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{})
		require.NoError(t, err)
		require.NotNil(t, res.CheckIn)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), res.Date)
	})

	t.Run("status computed from check out", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)

		res, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{
			Date:     "2025-03-03",
			CheckIn:  at(9, 0),
			CheckOut: at(14, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "Half Day", res.Status)
	})

	t.Run("employee cannot record for someone else", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		other := uint(6)

		_, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{UserID: &other})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("employee cannot override status", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{
			CheckIn: at(9, 0),
			Status:  strPtr("Leave"),
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("employee may state the computed status", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)

		res, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{
			Date:    "2025-03-03",
			CheckIn: at(9, 0),
			Status:  strPtr("present"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Present", res.Status)
	})

	t.Run("employee states present without times", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)

		before := time.Now().Add(-time.Second)
		res, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{
			Status: strPtr("Present"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Present", res.Status)
		require.NotNil(t, res.CheckIn)
		assert.True(t, res.CheckIn.After(before))
		assert.Nil(t, res.CheckOut)
	})

	t.Run("employee without times cannot state absent", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{
			Status: strPtr("Absent"),
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("manager marks absence without times", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)
		target := uint(7)

		res, err := deps.svc.Create(ctx, manager(2), attendance.CreateAttendanceRequest{
			UserID: &target,
			Date:   "2025-03-03",
			Status: strPtr("Absent"),
		})
		require.NoError(t, err)
		assert.NotNil(t, res.CheckIn)
		assert.Equal(t, "Absent", res.Status)
	})

	t.Run("reversed interval", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{
			CheckIn:  at(17, 0),
			CheckOut: at(9, 0),
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidInterval)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.svc.Create(ctx, manager(2), attendance.CreateAttendanceRequest{Status: strPtr("Late")})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.userExistsFn = func(ctx context.Context, userID uint) (bool, error) { return false, nil }
		target := uint(404)

		_, err := deps.svc.Create(ctx, manager(2), attendance.CreateAttendanceRequest{UserID: &target})
		assert.ErrorIs(t, err, attendanceerrors.ErrUserNotFound)
	})

	t.Run("duplicate found by pre-check", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.findByUserAndDateFn = func(ctx context.Context, userID uint, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: 3, UserID: userID, Date: date}, nil
		}

		_, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceExists)
	})

	t.Run("duplicate caught by unique constraint", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			return gorm.ErrDuplicatedKey
		}

		_, err := deps.svc.Create(ctx, employee(5), attendance.CreateAttendanceRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceExists)
	})
}

func TestAttendanceService_Update(t *testing.T) {
	ctx := context.Background()

	openRow := func() *attendance.Attendance {
		return &attendance.Attendance{
			ID:      10,
			UserID:  5,
			Date:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			Status:  attendance.StatusPresent,
			CheckIn: at(9, 0),
		}
	}

	t.Run("employee 5 works 09:00 to 17:30", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*attendance.Attendance, error) { return openRow(), nil }

		var updated *attendance.Attendance
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			updated = a
			return nil
		}

		res, err := deps.svc.Update(ctx, employee(5), 10, attendance.UpdateAttendanceRequest{CheckOut: at(17, 30)})
		require.NoError(t, err)
		assert.Equal(t, "Present", res.Status)
		require.NotNil(t, updated.CheckOut)
		assert.Equal(t, 17, updated.CheckOut.Hour())
		assert.NoError(t, deps.mock.ExpectationsWereMet())
	})

	t.Run("short day becomes absent", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*attendance.Attendance, error) { return openRow(), nil }

		res, err := deps.svc.Update(ctx, employee(5), 10, attendance.UpdateAttendanceRequest{CheckOut: at(11, 0)})
		require.NoError(t, err)
		assert.Equal(t, "Absent", res.Status)
	})

	t.Run("second check out conflicts", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*attendance.Attendance, error) {
			row := openRow()
			row.CheckOut = at(17, 0)
			return row, nil
		}

		_, err := deps.svc.Update(ctx, employee(5), 10, attendance.UpdateAttendanceRequest{CheckOut: at(18, 0)})
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})

	t.Run("check out before check in", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*attendance.Attendance, error) { return openRow(), nil }

		_, err := deps.svc.Update(ctx, employee(5), 10, attendance.UpdateAttendanceRequest{CheckOut: at(8, 0)})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidInterval)
	})

	t.Run("employee cannot touch another record", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*attendance.Attendance, error) { return openRow(), nil }

		_, err := deps.svc.Update(ctx, employee(6), 10, attendance.UpdateAttendanceRequest{CheckOut: at(17, 0)})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("status only needs set_status", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*attendance.Attendance, error) { return openRow(), nil }

		_, err := deps.svc.Update(ctx, employee(5), 10, attendance.UpdateAttendanceRequest{Status: strPtr("Leave")})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("manager sets any status", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*attendance.Attendance, error) { return openRow(), nil }

		res, err := deps.svc.Update(ctx, manager(2), 10, attendance.UpdateAttendanceRequest{Status: strPtr("Leave")})
		require.NoError(t, err)
		assert.Equal(t, "Leave", res.Status)
	})

	t.Run("empty body", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.svc.Update(ctx, manager(2), 10, attendance.UpdateAttendanceRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrNothingToUpdate)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		expectTx(t, deps.mock, false)

		_, err := deps.svc.Update(ctx, manager(2), 99, attendance.UpdateAttendanceRequest{CheckOut: at(17, 0)})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})
}

func TestAttendanceService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("employee is scoped to self", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		deps.repo.findAllFn = func(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
			require.NotNil(t, filter.UserID)
			assert.Equal(t, uint(5), *filter.UserID)
			return []attendance.Attendance{{ID: 1, UserID: 5}}, nil
		}

		res, err := deps.svc.GetAll(ctx, employee(5), attendance.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("employee filtering on another user", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		other := uint(6)

		_, err := deps.svc.GetAll(ctx, employee(5), attendance.ListFilter{UserID: &other})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("manager sees all", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		deps.repo.findAllFn = func(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
			assert.Nil(t, filter.UserID)
			return []attendance.Attendance{{ID: 1, UserID: 5}, {ID: 2, UserID: 6}}, nil
		}

		res, err := deps.svc.GetAll(ctx, manager(2), attendance.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, res, 2)
	})
}
