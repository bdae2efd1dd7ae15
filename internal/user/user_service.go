package user

import (
	"context"
	"database/sql"
	"strings"

	"go-hrops/internal/domain"
	"go-hrops/internal/rbac"
	"go-hrops/internal/shared/contextutil"
	usererrors "go-hrops/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	GetAll(ctx context.Context, actor domain.Actor, userID *uint) ([]UserResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id uint) (UserResponse, error)
	Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error)
	ChangeRole(ctx context.Context, actor domain.Actor, id uint, req ChangeRoleRequest) (UserResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	policy     rbac.Service
	bcryptCost int
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policy rbac.Service, bcryptCost int, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		db:         db,
		repo:       repo,
		policy:     policy,
		bcryptCost: bcryptCost,
		logger:     l,
	}
}

func (s *service) GetAll(ctx context.Context, actor domain.Actor, userID *uint) ([]UserResponse, error) {
	decision := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourceUser,
		Action:       rbac.ActionRead,
		TargetUserID: userID,
	})
	if !decision.Allowed {
		return nil, decision.Err()
	}

	users, err := s.repo.FindAll(ctx, decision.ScopeFilter)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uint) (UserResponse, error) {
	decision := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:        actor,
		Resource:     rbac.ResourceUser,
		Action:       rbac.ActionRead,
		TargetUserID: &id,
	})
	if !decision.Allowed {
		return UserResponse{}, decision.Err()
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	role, err := domain.ParsePredefinedRole(req.Role)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	decision := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:         actor,
		Resource:      rbac.ResourceUser,
		Action:        rbac.ActionCreate,
		RequestedRole: &role,
	})
	if !decision.Allowed {
		return UserResponse{}, decision.Err()
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return UserResponse{}, usererrors.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   string(hashed),
		Role:       role,
		Department: req.Department,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user created",
		zap.Uint("user_id", u.ID),
		zap.String("role", role.String()),
		zap.Uint("created_by", actor.ID),
	)
	return mapToResponse(*u), nil
}

func (s *service) ChangeRole(ctx context.Context, actor domain.Actor, id uint, req ChangeRoleRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	role, err := domain.ParsePredefinedRole(req.Role)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	decision := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:         actor,
		Resource:      rbac.ResourceUser,
		Action:        rbac.ActionChangeRole,
		TargetUserID:  &id,
		RequestedRole: &role,
	})
	if !decision.Allowed {
		return UserResponse{}, decision.Err()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("change role begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// concurrent role changes on the same user serialize on this lock
	u, err := qtx.LockByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := qtx.UpdateRole(ctx, id, role); err != nil {
		l.Error("change role persist failed", zap.Uint("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		l.Error("change role commit failed", zap.Uint("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	u.Role = role

	l.Info("user role changed",
		zap.Uint("user_id", id),
		zap.String("role", role.String()),
		zap.Uint("changed_by", actor.ID),
	)
	return mapToResponse(*u), nil
}
