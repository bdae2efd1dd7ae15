package auth

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	autherrors "go-hrops/internal/auth/errors"
	"go-hrops/internal/domain"
	"go-hrops/internal/shared/contextutil"
	"go-hrops/internal/shared/dbutil"
	"go-hrops/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	// Authenticate verifies the token and reloads the user so role changes
	// take effect without re-login.
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
	Me(ctx context.Context, actor domain.Actor) (UserInfo, error)
	ChangePassword(ctx context.Context, actor domain.Actor, req ChangePasswordRequest) error
}

type service struct {
	db         *sql.DB
	users      user.Repository
	tokens     *TokenManager
	bcryptCost int
	lookups    singleflight.Group
	logger     *zap.Logger
}

func NewService(db *sql.DB, users user.Repository, tokens *TokenManager, bcryptCost int, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		db:         db,
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     l,
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return AuthResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.users.WithTx(tx)

	if _, err := qtx.FindByEmail(ctx, email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, err
	}

	// Sistem kosong: user pertama menjadi Admin.
	total, err := qtx.Count(ctx)
	if err != nil {
		return AuthResponse{}, err
	}
	role := domain.Predefined(domain.RoleEmployee)
	if total == 0 {
		role = domain.Predefined(domain.RoleAdmin)
	}

	u := &user.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if company := strings.TrimSpace(req.CompanyName); company != "" {
		u.Department = &company
	}

	if err := qtx.Create(ctx, u); err != nil {
		if dbutil.IsUniqueViolation(err, "uq_users_email") {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	l.Info("user signed up", zap.Uint("user_id", u.ID), zap.String("role", role.String()))
	return s.issue(*u)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(*u)
}

func (s *service) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Actor{}, err
	}

	key := strconv.FormatUint(uint64(claims.UserID), 10)
	v, err, _ := s.lookups.Do(key, func() (interface{}, error) {
		return s.users.FindByID(ctx, claims.UserID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Actor{}, autherrors.ErrInvalidToken
		}
		return domain.Actor{}, err
	}

	return v.(*user.User).Actor(), nil
}

func (s *service) Me(ctx context.Context, actor domain.Actor) (UserInfo, error) {
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserInfo{}, autherrors.ErrInvalidToken
		}
		return UserInfo{}, err
	}
	return toUserInfo(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, actor domain.Actor, req ChangePasswordRequest) error {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrInvalidToken
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hashed)); err != nil {
		return err
	}

	l.Info("password changed", zap.Uint("user_id", u.ID))
	return nil
}

func (s *service) issue(u user.User) (AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(u.Actor())
	if err != nil {
		s.logger.Error("failed to sign token", zap.Uint("user_id", u.ID), zap.Error(err))
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return AuthResponse{Token: token, ExpiresAt: expiresAt, User: toUserInfo(u)}, nil
}
