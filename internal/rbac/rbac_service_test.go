package rbac

import (
	"errors"
	"testing"

	"go-hrops/internal/domain"
	"go-hrops/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewDefaultService()
	require.NoError(t, err)
	return svc
}

func actorWith(id uint, role domain.Role) domain.Actor {
	return domain.Actor{ID: id, Email: "u@example.com", Role: role}
}

func uintPtr(v uint) *uint { return &v }

func rolePtr(r domain.Role) *domain.Role { return &r }

func TestAuthorize_RoleMatrix(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		role     domain.PredefinedRole
		resource string
		action   string
		allowed  bool
	}{
		{"employee creates attendance", domain.RoleEmployee, ResourceAttendance, ActionCreate, true},
		{"employee cannot set attendance status", domain.RoleEmployee, ResourceAttendance, ActionSetStatus, false},
		{"employee cannot approve leave", domain.RoleEmployee, ResourceLeave, ActionApprove, false},
		{"employee cannot create payroll", domain.RoleEmployee, ResourcePayroll, ActionCreate, false},
		{"manager approves leave", domain.RoleManager, ResourceLeave, ActionApprove, true},
		{"manager cannot change roles", domain.RoleManager, ResourceUser, ActionChangeRole, false},
		{"hr officer cannot create payroll", domain.RoleHROfficer, ResourcePayroll, ActionCreate, false},
		{"hr officer sets attendance status", domain.RoleHROfficer, ResourceAttendance, ActionSetStatus, true},
		{"payroll officer updates payroll status", domain.RolePayrollOfficer, ResourcePayroll, ActionUpdateStatus, true},
		{"payroll officer cannot approve leave", domain.RolePayrollOfficer, ResourceLeave, ActionApprove, false},
		{"admin changes roles", domain.RoleAdmin, ResourceUser, ActionChangeRole, true},
		{"only admin updates settings", domain.RoleManager, ResourceSettings, ActionUpdate, false},
		{"every role reads settings", domain.RoleEmployee, ResourceSettings, ActionRead, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := svc.Authorize(AuthorizeRequest{
				Actor:    actorWith(7, domain.Predefined(tt.role)),
				Resource: tt.resource,
				Action:   tt.action,
			})
			assert.Equal(t, tt.allowed, d.Allowed, d.Reason)
			if !tt.allowed {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestAuthorize_OwnScope(t *testing.T) {
	svc := newTestService(t)
	emp := actorWith(7, domain.Predefined(domain.RoleEmployee))

	t.Run("no target filters to self", func(t *testing.T) {
		d := svc.Authorize(AuthorizeRequest{Actor: emp, Resource: ResourceLeave, Action: ActionRead})
		require.True(t, d.Allowed)
		require.NotNil(t, d.ScopeFilter)
		assert.Equal(t, uint(7), *d.ScopeFilter)
	})

	t.Run("own target allowed", func(t *testing.T) {
		d := svc.Authorize(AuthorizeRequest{Actor: emp, Resource: ResourceAttendance, Action: ActionCreate, TargetUserID: uintPtr(7)})
		assert.True(t, d.Allowed)
	})

	t.Run("foreign target denied", func(t *testing.T) {
		d := svc.Authorize(AuthorizeRequest{Actor: emp, Resource: ResourceAttendance, Action: ActionCreate, TargetUserID: uintPtr(8)})
		assert.False(t, d.Allowed)
		assert.Contains(t, d.Reason, "own")
	})

	t.Run("payroll officer any read but own leave create", func(t *testing.T) {
		po := actorWith(3, domain.Predefined(domain.RolePayrollOfficer))
		read := svc.Authorize(AuthorizeRequest{Actor: po, Resource: ResourceLeave, Action: ActionRead})
		require.True(t, read.Allowed)
		assert.Nil(t, read.ScopeFilter)

		create := svc.Authorize(AuthorizeRequest{Actor: po, Resource: ResourceLeave, Action: ActionCreate, TargetUserID: uintPtr(4)})
		assert.False(t, create.Allowed)
	})
}

func TestAuthorize_AnyScopeKeepsExplicitFilter(t *testing.T) {
	svc := newTestService(t)
	mgr := actorWith(1, domain.Predefined(domain.RoleManager))

	d := svc.Authorize(AuthorizeRequest{Actor: mgr, Resource: ResourceAttendance, Action: ActionRead, TargetUserID: uintPtr(9)})
	require.True(t, d.Allowed)
	require.NotNil(t, d.ScopeFilter)
	assert.Equal(t, uint(9), *d.ScopeFilter)
}

func TestAuthorize_CustomRoleDenied(t *testing.T) {
	svc := newTestService(t)

	d := svc.Authorize(AuthorizeRequest{
		Actor:    actorWith(2, domain.Custom("Intern")),
		Resource: ResourceSettings,
		Action:   ActionRead,
	})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "Intern")
}

func TestAuthorize_UserRules(t *testing.T) {
	svc := newTestService(t)
	admin := actorWith(1, domain.Predefined(domain.RoleAdmin))
	mgr := actorWith(2, domain.Predefined(domain.RoleManager))

	t.Run("manager cannot create admin", func(t *testing.T) {
		d := svc.Authorize(AuthorizeRequest{
			Actor: mgr, Resource: ResourceUser, Action: ActionCreate,
			RequestedRole: rolePtr(domain.Predefined(domain.RoleAdmin)),
		})
		assert.False(t, d.Allowed)
	})

	t.Run("manager creates employee", func(t *testing.T) {
		d := svc.Authorize(AuthorizeRequest{
			Actor: mgr, Resource: ResourceUser, Action: ActionCreate,
			RequestedRole: rolePtr(domain.Predefined(domain.RoleEmployee)),
		})
		assert.True(t, d.Allowed)
	})

	t.Run("admin cannot demote self", func(t *testing.T) {
		d := svc.Authorize(AuthorizeRequest{
			Actor: admin, Resource: ResourceUser, Action: ActionChangeRole,
			TargetUserID:  uintPtr(1),
			RequestedRole: rolePtr(domain.Predefined(domain.RoleEmployee)),
		})
		assert.False(t, d.Allowed)
	})

	t.Run("admin demotes someone else", func(t *testing.T) {
		d := svc.Authorize(AuthorizeRequest{
			Actor: admin, Resource: ResourceUser, Action: ActionChangeRole,
			TargetUserID:  uintPtr(5),
			RequestedRole: rolePtr(domain.Predefined(domain.RoleEmployee)),
		})
		assert.True(t, d.Allowed)
	})
}

func TestDecision_Err(t *testing.T) {
	assert.NoError(t, Decision{Allowed: true}.Err())

	err := Decision{Reason: "nope"}.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 403, httpErr.Status)
	assert.Equal(t, map[string]string{"reason": "nope"}, httpErr.Details)
}

func TestPermitsAndGrantsFor(t *testing.T) {
	svc := newTestService(t)

	assert.True(t, svc.Permits(domain.Predefined(domain.RoleManager), ResourceLeave, ActionApprove))
	assert.False(t, svc.Permits(domain.Custom("Intern"), ResourceLeave, ActionRead))

	grants := svc.GrantsFor(domain.Predefined(domain.RoleEmployee))
	require.NotEmpty(t, grants)
	for _, g := range grants {
		assert.Equal(t, domain.RoleEmployee, g.Role)
	}
	assert.Empty(t, svc.GrantsFor(domain.Custom("Intern")))
}
