package rbac

import (
	"fmt"

	"go-hrops/internal/domain"
	"go-hrops/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Service interface {
	// Authorize decides whether the actor may perform action on resource and
	// which owner filter applies. It never fails; denials carry a Reason.
	Authorize(req AuthorizeRequest) Decision
	// Permits is the target-free check used to gate routes.
	Permits(role domain.Role, resource, action string) bool
	GrantsFor(role domain.Role) []Grant
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	grants   []Grant
	logger   *zap.Logger
}

func NewService(enforcer *casbin.SyncedEnforcer, grants []Grant, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, grants: grants, logger: l}
}

// NewDefaultService wires the static grant table.
func NewDefaultService(logger ...*zap.Logger) (Service, error) {
	e, err := NewEnforcer(DefaultGrants)
	if err != nil {
		return nil, err
	}
	return NewService(e, DefaultGrants, logger...), nil
}

func (s *service) Authorize(req AuthorizeRequest) Decision {
	role, ok := req.Actor.Role.Predefined()
	if !ok {
		return s.deny(req, fmt.Sprintf("custom role %q has no permissions", req.Actor.Role.String()))
	}

	allowed, rule, err := s.enforcer.EnforceEx(string(role), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("policy evaluation failed",
			zap.String("role", string(role)),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return s.deny(req, "policy evaluation failed")
	}
	if !allowed {
		return s.deny(req, fmt.Sprintf("role %s may not %s %s", role, req.Action, req.Resource))
	}

	scope := ScopeAny
	if len(rule) > 3 {
		scope = rule[3]
	}

	var filter *uint
	if scope == ScopeOwn {
		if req.TargetUserID != nil && *req.TargetUserID != req.Actor.ID {
			return s.deny(req, fmt.Sprintf("role %s may only %s their own %s records", role, req.Action, req.Resource))
		}
		own := req.Actor.ID
		filter = &own
	} else if req.TargetUserID != nil {
		target := *req.TargetUserID
		filter = &target
	}

	if req.Resource == ResourceUser {
		switch req.Action {
		case ActionCreate:
			if req.RequestedRole != nil && req.RequestedRole.Is(domain.RoleAdmin) && role != domain.RoleAdmin {
				return s.deny(req, "only an Admin may create an Admin user")
			}
		case ActionChangeRole:
			selfTarget := req.TargetUserID != nil && *req.TargetUserID == req.Actor.ID
			keepsAdmin := req.RequestedRole != nil && req.RequestedRole.Is(domain.RoleAdmin)
			if selfTarget && !keepsAdmin {
				return s.deny(req, "an Admin may not remove their own Admin role")
			}
		}
	}

	return Decision{Allowed: true, ScopeFilter: filter}
}

func (s *service) Permits(role domain.Role, resource, action string) bool {
	p, ok := role.Predefined()
	if !ok {
		return false
	}
	allowed, err := s.enforcer.Enforce(string(p), resource, action)
	if err != nil {
		s.logger.Error("policy evaluation failed", zap.String("role", string(p)), zap.Error(err))
		return false
	}
	return allowed
}

func (s *service) GrantsFor(role domain.Role) []Grant {
	p, ok := role.Predefined()
	if !ok {
		return []Grant{}
	}
	out := make([]Grant, 0)
	for _, g := range s.grants {
		if g.Role == p {
			out = append(out, g)
		}
	}
	return out
}

func (s *service) deny(req AuthorizeRequest, reason string) Decision {
	s.logger.Debug("access denied",
		zap.Uint("actor_id", req.Actor.ID),
		zap.String("role", req.Actor.Role.String()),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.String("reason", reason),
	)
	return Decision{Allowed: false, Reason: reason}
}

// Err turns a denial into the Forbidden error surfaced to clients.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperror.ErrForbidden.WithDetails(map[string]string{"reason": d.Reason})
}
