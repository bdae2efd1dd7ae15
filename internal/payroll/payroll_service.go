package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-hrops/internal/domain"
	"go-hrops/internal/events"
	"go-hrops/internal/messaging/kafka"
	payrollerrors "go-hrops/internal/payroll/errors"
	"go-hrops/internal/rbac"
	"go-hrops/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]PayrollResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id uint) (PayrollResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id uint, req UpdatePayrollStatusRequest) (PayrollResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	policy rbac.Service
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	policy rbac.Service,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
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

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreatePayrollRequest) (PayrollResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.authorize(actor, rbac.ActionCreate, req.UserID); err != nil {
		return PayrollResponse{}, err
	}

	month := strings.TrimSpace(req.Month)
	if month == "" {
		return PayrollResponse{}, payrollerrors.ErrInvalidMonth
	}
	if req.Amount == nil || !validAmount(*req.Amount) {
		return PayrollResponse{}, payrollerrors.ErrInvalidAmount
	}

	status := StatusPending
	if req.Status != nil {
		var err error
		if status, err = ParseStatus(*req.Status); err != nil {
			return PayrollResponse{}, err
		}
		if status == StatusPaid {
			return PayrollResponse{}, payrollerrors.ErrPaidAtCreation
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, req.UserID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !exists {
		return PayrollResponse{}, payrollerrors.ErrUserNotFound
	}

	// uq_payroll_user_month is the real guard; this only avoids a failed insert.
	if _, err := qtx.FindByUserAndMonth(ctx, req.UserID, month); err == nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollResponse{}, err
	}

	row := &Payroll{
		UserID:    req.UserID,
		Month:     month,
		Amount:    *req.Amount,
		Status:    status,
		CreatedBy: actor.ID,
	}
	if err := qtx.Create(ctx, row); err != nil {
		l.Warn("create payroll persist failed", zap.Uint("user_id", req.UserID), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	l.Info("create payroll success",
		zap.Uint("payroll_id", row.ID),
		zap.Uint("user_id", row.UserID),
		zap.String("month", row.Month),
		zap.String("status", string(row.Status)),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, filter ListFilter) ([]PayrollResponse, error) {
	decision := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourcePayroll,
		Action:       rbac.ActionRead,
		TargetUserID: filter.UserID,
	})
	if !decision.Allowed {
		return nil, decision.Err()
	}
	filter.UserID = decision.ScopeFilter

	payrolls, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uint) (PayrollResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := s.authorize(actor, rbac.ActionRead, row.UserID); err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor domain.Actor, id uint, req UpdatePayrollStatusRequest) (PayrollResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	requested, err := ParseStatus(req.Status)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update payroll status begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.LockByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := s.authorize(actor, rbac.ActionUpdateStatus, row.UserID); err != nil {
		return PayrollResponse{}, err
	}

	previous := row.Status
	if err := CanTransition(previous, requested); err != nil {
		l.Warn("update payroll status rejected",
			zap.Uint("payroll_id", id),
			zap.String("from_status", string(previous)),
			zap.String("to_status", string(requested)),
		)
		return PayrollResponse{}, err
	}
	if previous == requested {
		return mapToResponse(*row), nil
	}

	row.Status = requested
	if requested == StatusPaid {
		paidAt := s.now().UTC()
		row.PaidAt = &paidAt
	}

	if err := qtx.Update(ctx, row); err != nil {
		l.Error("update payroll status persist failed", zap.Uint("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := s.enqueueStatusChanged(ctx, tx, *row, previous, actor.ID); err != nil {
		l.Error("update payroll status outbox persist failed", zap.Uint("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		l.Error("update payroll status commit failed", zap.Uint("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	l.Info("update payroll status success",
		zap.Uint("payroll_id", id),
		zap.String("from_status", string(previous)),
		zap.String("to_status", string(requested)),
		zap.Uint("changed_by", actor.ID),
	)
	return mapToResponse(*row), nil
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, row Payroll, previous Status, changedBy uint) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	eventID := uuid.NewString()
	payload := events.PayrollStatusChangedEvent{
		EventID:    eventID,
		EventType:  events.PayrollStatusChangedType,
		RequestID:  rid,
		PayrollID:  row.ID,
		UserID:     row.UserID,
		Month:      row.Month,
		Amount:     row.Amount.StringFixed(2),
		FromStatus: string(previous),
		ToStatus:   string(row.Status),
		ChangedBy:  changedBy,
		OccurredAt: s.now().UTC(),
	}

	event, err := kafka.NewPendingEvent(
		eventID, rid, "payroll", strconv.FormatUint(uint64(row.ID), 10),
		events.PayrollStatusChangedType, events.PayrollStatusChangedTopic, payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) authorize(actor domain.Actor, action string, target uint) error {
	return s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourcePayroll,
		Action:       action,
		TargetUserID: &target,
	}).Err()
}
