package settings

import (
	"context"
	"errors"
	"time"

	"go-hrops/internal/attendance"
	"go-hrops/internal/domain"
	"go-hrops/internal/rbac"
	settingserrors "go-hrops/internal/settings/errors"
	"go-hrops/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, actor domain.Actor, req UpdateSettingsRequest) (SettingsResponse, error)
	// Thresholds satisfies attendance.ThresholdSource.
	Thresholds(ctx context.Context) (attendance.Thresholds, error)
}

type service struct {
	repo     Repository
	policy   rbac.Service
	defaults Defaults
	reads    singleflight.Group
	logger   *zap.Logger
}

func NewService(repo Repository, policy rbac.Service, defaults Defaults, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{repo: repo, policy: policy, defaults: defaults, logger: l}
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	current, err := s.current(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapToResponse(current), nil
}

func (s *service) Update(ctx context.Context, actor domain.Actor, req UpdateSettingsRequest) (SettingsResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.policy.Authorize(rbac.AuthorizeRequest{
		Actor:    actor,
		Resource: rbac.ResourceSettings,
		Action:   rbac.ActionUpdate,
	}).Err(); err != nil {
		return SettingsResponse{}, err
	}

	if err := validateThresholds(req.FullDayHours, req.HalfDayMinHours); err != nil {
		return SettingsResponse{}, err
	}
	if err := validateWorkingHours(req.WorkdayStart, req.WorkdayEnd); err != nil {
		return SettingsResponse{}, err
	}

	updatedBy := actor.ID
	row := &Settings{
		FullDayHours:    req.FullDayHours,
		HalfDayMinHours: req.HalfDayMinHours,
		WorkdayStart:    req.WorkdayStart,
		WorkdayEnd:      req.WorkdayEnd,
		UpdatedBy:       &updatedBy,
	}
	if err := s.repo.Save(ctx, row); err != nil {
		l.Error("failed to save settings", zap.Error(err))
		return SettingsResponse{}, err
	}

	l.Info("settings updated",
		zap.Float64("full_day_hours", row.FullDayHours),
		zap.Float64("half_day_min_hours", row.HalfDayMinHours),
		zap.Uint("updated_by", actor.ID),
	)
	return mapToResponse(*row), nil
}

func (s *service) Thresholds(ctx context.Context) (attendance.Thresholds, error) {
	current, err := s.current(ctx)
	if err != nil {
		return attendance.Thresholds{}, err
	}
	return attendance.Thresholds{
		FullDayHours:    current.FullDayHours,
		HalfDayMinHours: current.HalfDayMinHours,
	}, nil
}

// current collapses concurrent reads of the single settings row.
func (s *service) current(ctx context.Context) (Settings, error) {
	v, err, _ := s.reads.Do("settings", func() (interface{}, error) {
		row, err := s.repo.Get(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Settings{
				FullDayHours:    s.defaults.FullDayHours,
				HalfDayMinHours: s.defaults.HalfDayMinHours,
				WorkdayStart:    s.defaults.WorkdayStart,
				WorkdayEnd:      s.defaults.WorkdayEnd,
			}, nil
		}
		if err != nil {
			return nil, err
		}
		return *row, nil
	})
	if err != nil {
		return Settings{}, err
	}
	return v.(Settings), nil
}

func validateThresholds(full, half float64) error {
	if half <= 0 || full > 24 || half >= full {
		return settingserrors.ErrInvalidThresholds
	}
	return nil
}

func validateWorkingHours(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return settingserrors.ErrInvalidWorkingHours
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return settingserrors.ErrInvalidWorkingHours
	}
	if !s.Before(e) {
		return settingserrors.ErrInvalidWorkingHours
	}
	return nil
}
