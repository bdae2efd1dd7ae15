package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-hrops/internal/attendance/errors"
	"go-hrops/internal/domain"
	"go-hrops/internal/rbac"
	"go-hrops/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, actor domain.Actor, id uint, req UpdateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]AttendanceResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	policy     rbac.Service
	thresholds ThresholdSource
	loc        *time.Location
	logger     *zap.Logger
}

// NewService wires the attendance service. loc decides which calendar day
// "today" is; nil means UTC.
func NewService(
	db *sql.DB,
	repo Repository,
	policy rbac.Service,
	thresholds ThresholdSource,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:         db,
		repo:       repo,
		policy:     policy,
		thresholds: thresholds,
		loc:        loc,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateAttendanceRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	target := actor.ID
	if req.UserID != nil {
		target = *req.UserID
	}
	if err := s.authorize(actor, rbac.ActionCreate, target); err != nil {
		return AttendanceResponse{}, err
	}

	now := time.Now()
	day, err := s.resolveDate(req.Date, now)
	if err != nil {
		return AttendanceResponse{}, err
	}

	// an open record is always anchored at a check-in, even with a stated status
	checkIn := req.CheckIn
	if checkIn == nil && req.CheckOut == nil {
		checkIn = &now
	}
	if req.CheckOut != nil && checkIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrCheckInRequired
	}

	var computed Status
	if checkIn != nil {
		th, err := s.thresholds.Thresholds(ctx)
		if err != nil {
			return AttendanceResponse{}, err
		}
		computed, err = ComputeStatus(*checkIn, req.CheckOut, th)
		if err != nil {
			l.Warn("rejected attendance interval", zap.Uint("user_id", target))
			return AttendanceResponse{}, err
		}
	}

	status, err := s.resolveStatus(actor, target, req.Status, computed)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, target)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !exists {
		return AttendanceResponse{}, attendanceerrors.ErrUserNotFound
	}

	// Pre-check only for a friendlier path; uq_attendance_user_date is what
	// actually guarantees a single row.
	if _, err := qtx.FindByUserAndDate(ctx, target, day); err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		UserID:   target,
		Date:     day,
		Status:   status,
		CheckIn:  utcPtr(checkIn),
		CheckOut: utcPtr(req.CheckOut),
	}
	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	l.Info("attendance recorded",
		zap.Uint("attendance_id", row.ID),
		zap.Uint("user_id", target),
		zap.String("status", string(status)),
	)
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, id uint, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if req.CheckOut == nil && req.Status == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNothingToUpdate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := s.authorize(actor, rbac.ActionUpdate, row.UserID); err != nil {
		return AttendanceResponse{}, err
	}

	var computed Status
	if req.CheckOut != nil {
		if row.CheckOut != nil {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
		}
		if row.CheckIn == nil {
			return AttendanceResponse{}, attendanceerrors.ErrCheckInRequired
		}
		th, err := s.thresholds.Thresholds(ctx)
		if err != nil {
			return AttendanceResponse{}, err
		}
		computed, err = ComputeStatus(*row.CheckIn, req.CheckOut, th)
		if err != nil {
			return AttendanceResponse{}, err
		}
		row.CheckOut = utcPtr(req.CheckOut)
	}

	status, err := s.resolveStatus(actor, row.UserID, req.Status, computed)
	if err != nil {
		return AttendanceResponse{}, err
	}
	row.Status = status

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	l.Info("attendance updated",
		zap.Uint("attendance_id", row.ID),
		zap.String("status", string(row.Status)),
		zap.Uint("updated_by", actor.ID),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]AttendanceResponse, error) {
	decision := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourceAttendance,
		Action:       rbac.ActionRead,
		TargetUserID: filter.UserID,
	})
	if !decision.Allowed {
		return nil, decision.Err()
	}
	filter.UserID = decision.ScopeFilter

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// resolveStatus applies an explicitly requested status. Overriding the
// computed value needs the set_status grant.
func (s *service) resolveStatus(actor domain.Actor, target uint, requested *string, computed Status) (Status, error) {
	if requested == nil {
		return computed, nil
	}
	status, err := ParseStatus(*requested)
	if err != nil {
		return "", err
	}
	if status != computed {
		if err := s.authorize(actor, rbac.ActionSetStatus, target); err != nil {
			return "", err
		}
	}
	return status, nil
}

func (s *service) authorize(actor domain.Actor, action string, target uint) error {
	return s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourceAttendance,
		Action:       action,
		TargetUserID: &target,
	}).Err()
}

func (s *service) resolveDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return CalendarDay(now, s.loc), nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDate
	}
	return CalendarDay(d, s.loc), nil
}

// CalendarDay returns midnight UTC of t's calendar day in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
