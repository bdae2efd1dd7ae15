package leave

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"go-hrops/internal/domain"
	"go-hrops/internal/events"
	leaveerrors "go-hrops/internal/leave/errors"
	"go-hrops/internal/messaging/kafka"
	"go-hrops/internal/rbac"
	"go-hrops/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id uint) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id uint, req UpdateLeaveStatusRequest) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	policy rbac.Service
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the leave service. outbox may be nil, in which case no
// status events are recorded.
func NewService(
	db *sql.DB,
	repo Repository,
	policy rbac.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		policy: policy,
		outbox: outbox,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	target := actor.ID
	if req.UserID != nil {
		target = *req.UserID
	}
	if err := s.authorize(actor, rbac.ActionCreate, target); err != nil {
		return LeaveResponse{}, err
	}

	from, err := parseDate(req.From)
	if err != nil {
		return LeaveResponse{}, err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return LeaveResponse{}, err
	}
	if to.Before(from) {
		return LeaveResponse{}, leaveerrors.ErrInvalidInterval
	}

	status := StatusPending
	if req.Status != nil {
		if status, err = ParseStatus(*req.Status); err != nil {
			return LeaveResponse{}, err
		}
		// Creating an already decided request is an approval in disguise.
		if status != StatusPending {
			if err := s.authorize(actor, rbac.ActionApprove, target); err != nil {
				return LeaveResponse{}, err
			}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.LockUser(ctx, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrUserNotFound
		}
		return LeaveResponse{}, err
	}

	existing, err := qtx.FindActiveRanges(ctx, target)
	if err != nil {
		return LeaveResponse{}, err
	}
	candidate := DateRange{From: from, To: to}
	if HasOverlap(candidate, existing) {
		l.Warn("create leave overlap detected",
			zap.Uint("user_id", target),
			zap.String("from", req.From),
			zap.String("to", req.To),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	row := &Leave{
		UserID:   target,
		Reason:   req.Reason,
		FromDate: from,
		ToDate:   to,
		Status:   status,
	}
	if status != StatusPending {
		decidedAt := s.now().UTC()
		decidedBy := actor.ID
		row.DecidedBy = &decidedBy
		row.DecidedAt = &decidedAt
	}

	if err := qtx.Create(ctx, row); err != nil {
		l.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		l.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("create leave success",
		zap.Uint("leave_id", row.ID),
		zap.Uint("user_id", target),
		zap.String("status", string(status)),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]LeaveResponse, error) {
	decision := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourceLeave,
		Action:       rbac.ActionRead,
		TargetUserID: filter.UserID,
	})
	if !decision.Allowed {
		return nil, decision.Err()
	}
	filter.UserID = decision.ScopeFilter

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uint) (LeaveResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := s.authorize(actor, rbac.ActionRead, row.UserID); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor domain.Actor, id uint, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	requested, err := ParseStatus(req.Status)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.LockByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := s.authorize(actor, rbac.ActionApprove, row.UserID); err != nil {
		return LeaveResponse{}, err
	}

	previous := row.Status
	if err := CanTransition(previous, requested); err != nil {
		l.Warn("update leave status rejected",
			zap.Uint("leave_id", id),
			zap.String("from_status", string(previous)),
			zap.String("to_status", string(requested)),
		)
		return LeaveResponse{}, err
	}

	decidedAt := s.now().UTC()
	decidedBy := actor.ID
	row.Status = requested
	row.DecidedBy = &decidedBy
	row.DecidedAt = &decidedAt

	if err := qtx.Update(ctx, row); err != nil {
		l.Error("update leave status persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueueStatusChanged(ctx, tx, *row, previous); err != nil {
		l.Error("update leave status outbox persist failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		l.Error("update leave status commit failed", zap.Uint("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Info("update leave status success",
		zap.Uint("leave_id", id),
		zap.String("from_status", string(previous)),
		zap.String("to_status", string(requested)),
		zap.Uint("decided_by", actor.ID),
	)
	return mapToResponse(*row), nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, row Leave, previous Status) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	eventID := uuid.NewString()
	payload := events.LeaveStatusChangedEvent{
		EventID:    eventID,
		EventType:  events.LeaveStatusChangedType,
		RequestID:  rid,
		LeaveID:    row.ID,
		UserID:     row.UserID,
		FromStatus: string(previous),
		ToStatus:   string(row.Status),
		From:       row.FromDate.Format(dateLayout),
		To:         row.ToDate.Format(dateLayout),
		OccurredAt: *row.DecidedAt,
	}
	if row.DecidedBy != nil {
		payload.DecidedBy = *row.DecidedBy
	}

	event, err := kafka.NewPendingEvent(
		eventID, rid, "leave", strconv.FormatUint(uint64(row.ID), 10),
		events.LeaveStatusChangedType, events.LeaveStatusChangedTopic, payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) authorize(actor domain.Actor, action string, target uint) error {
	return s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourceLeave,
		Action:       action,
		TargetUserID: &target,
	}).Err()
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
