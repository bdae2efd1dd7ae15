package notification

import (
	"context"
	"errors"
	"time"

	"go-hrops/internal/domain"
	notificationerrors "go-hrops/internal/notification/errors"
	"go-hrops/internal/rbac"
	"go-hrops/internal/shared/contextutil"
	"go-hrops/internal/shared/dbutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context, actor domain.Actor, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, actor domain.Actor, id uint) (NotificationResponse, error)
	// CreateFromEvent stores the notification for a status event. A
	// redelivered event returns created=false and no error.
	CreateFromEvent(ctx context.Context, payload []byte) (created bool, err error)
}

type service struct {
	repo   Repository
	policy rbac.Service
	logger *zap.Logger
}

func NewService(repo Repository, policy rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, policy: policy, logger: l}
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, unreadOnly bool) ([]NotificationResponse, error) {
	if err := s.authorize(actor, rbac.ActionRead); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByUser(ctx, actor.ID, unreadOnly)
	if err != nil {
		return nil, err
	}
	res := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		res[i] = mapToResponse(n)
	}
	return res, nil
}

func (s *service) MarkRead(ctx context.Context, actor domain.Actor, id uint) (NotificationResponse, error) {
	if err := s.authorize(actor, rbac.ActionUpdate); err != nil {
		return NotificationResponse{}, err
	}

	n, err := s.repo.MarkRead(ctx, id, actor.ID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Someone else's notification looks exactly like a missing one.
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) CreateFromEvent(ctx context.Context, payload []byte) (bool, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	n, err := fromEvent(payload)
	if err != nil {
		return false, err
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if dbutil.IsUniqueViolation(err, "uq_notifications_event") {
			return false, nil
		}
		return false, err
	}

	l.Debug("notification stored",
		zap.Uint("notification_id", n.ID),
		zap.Uint("user_id", n.UserID),
		zap.String("event_id", n.EventID),
		zap.String("event_type", n.EventType),
	)
	return true, nil
}

// Notifications are always the actor's own; the policy only gates roles.
func (s *service) authorize(actor domain.Actor, action string) error {
	self := actor.ID
	return s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourceNotification,
		Action:       action,
		TargetUserID: &self,
	}).Err()
}
