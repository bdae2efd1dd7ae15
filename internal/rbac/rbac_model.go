package rbac

import (
	"go-hrops/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, scope

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

const (
	ResourceAttendance   = "attendance"
	ResourceLeave        = "leave"
	ResourcePayroll      = "payroll"
	ResourceUser         = "user"
	ResourceSettings     = "settings"
	ResourceNotification = "notification"
)

const (
	ActionRead         = "read"
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionSetStatus    = "set_status"
	ActionApprove      = "approve"
	ActionUpdateStatus = "update_status"
	ActionChangeRole   = "change_role"
)

// ScopeOwn restricts a grant to rows owned by the actor; ScopeAny does not.
const (
	ScopeOwn = "own"
	ScopeAny = "any"
)

type Grant struct {
	Role     domain.PredefinedRole `json:"role"`
	Resource string                `json:"resource"`
	Action   string                `json:"action"`
	Scope    string                `json:"scope"`
}

var (
	employee       = domain.RoleEmployee
	manager        = domain.RoleManager
	admin          = domain.RoleAdmin
	hrOfficer      = domain.RoleHROfficer
	payrollOfficer = domain.RolePayrollOfficer
)

// DefaultGrants is the static permission table. Anything not listed is denied.
var DefaultGrants = []Grant{
	// Employee: self-service only.
	{employee, ResourceAttendance, ActionRead, ScopeOwn},
	{employee, ResourceAttendance, ActionCreate, ScopeOwn},
	{employee, ResourceAttendance, ActionUpdate, ScopeOwn},
	{employee, ResourceLeave, ActionRead, ScopeOwn},
	{employee, ResourceLeave, ActionCreate, ScopeOwn},
	{employee, ResourcePayroll, ActionRead, ScopeOwn},
	{employee, ResourceUser, ActionRead, ScopeOwn},

	{manager, ResourceAttendance, ActionRead, ScopeAny},
	{manager, ResourceAttendance, ActionCreate, ScopeAny},
	{manager, ResourceAttendance, ActionUpdate, ScopeAny},
	{manager, ResourceAttendance, ActionSetStatus, ScopeAny},
	{manager, ResourceLeave, ActionRead, ScopeAny},
	{manager, ResourceLeave, ActionCreate, ScopeAny},
	{manager, ResourceLeave, ActionApprove, ScopeAny},
	{manager, ResourcePayroll, ActionRead, ScopeAny},
	{manager, ResourcePayroll, ActionCreate, ScopeAny},
	{manager, ResourcePayroll, ActionUpdateStatus, ScopeAny},
	{manager, ResourceUser, ActionRead, ScopeAny},
	{manager, ResourceUser, ActionCreate, ScopeAny},

	{admin, ResourceAttendance, ActionRead, ScopeAny},
	{admin, ResourceAttendance, ActionCreate, ScopeAny},
	{admin, ResourceAttendance, ActionUpdate, ScopeAny},
	{admin, ResourceAttendance, ActionSetStatus, ScopeAny},
	{admin, ResourceLeave, ActionRead, ScopeAny},
	{admin, ResourceLeave, ActionCreate, ScopeAny},
	{admin, ResourceLeave, ActionApprove, ScopeAny},
	{admin, ResourcePayroll, ActionRead, ScopeAny},
	{admin, ResourcePayroll, ActionCreate, ScopeAny},
	{admin, ResourcePayroll, ActionUpdateStatus, ScopeAny},
	{admin, ResourceUser, ActionRead, ScopeAny},
	{admin, ResourceUser, ActionCreate, ScopeAny},
	{admin, ResourceUser, ActionChangeRole, ScopeAny},
	{admin, ResourceSettings, ActionUpdate, ScopeAny},

	{hrOfficer, ResourceAttendance, ActionRead, ScopeAny},
	{hrOfficer, ResourceAttendance, ActionCreate, ScopeAny},
	{hrOfficer, ResourceAttendance, ActionUpdate, ScopeAny},
	{hrOfficer, ResourceAttendance, ActionSetStatus, ScopeAny},
	{hrOfficer, ResourceLeave, ActionRead, ScopeAny},
	{hrOfficer, ResourceLeave, ActionCreate, ScopeAny},
	{hrOfficer, ResourceLeave, ActionApprove, ScopeAny},
	{hrOfficer, ResourcePayroll, ActionRead, ScopeAny},
	{hrOfficer, ResourceUser, ActionRead, ScopeAny},
	{hrOfficer, ResourceUser, ActionCreate, ScopeAny},

	// Payroll officers manage payroll; their own attendance and leave are self-service.
	{payrollOfficer, ResourceAttendance, ActionRead, ScopeAny},
	{payrollOfficer, ResourceAttendance, ActionCreate, ScopeOwn},
	{payrollOfficer, ResourceAttendance, ActionUpdate, ScopeOwn},
	{payrollOfficer, ResourceLeave, ActionRead, ScopeAny},
	{payrollOfficer, ResourceLeave, ActionCreate, ScopeOwn},
	{payrollOfficer, ResourcePayroll, ActionRead, ScopeAny},
	{payrollOfficer, ResourcePayroll, ActionCreate, ScopeAny},
	{payrollOfficer, ResourcePayroll, ActionUpdateStatus, ScopeAny},
	{payrollOfficer, ResourceUser, ActionRead, ScopeAny},
}

// Every predefined role reads settings and its own notifications.
func init() {
	for _, r := range domain.PredefinedRoles() {
		DefaultGrants = append(DefaultGrants,
			Grant{r, ResourceSettings, ActionRead, ScopeAny},
			Grant{r, ResourceNotification, ActionRead, ScopeOwn},
			Grant{r, ResourceNotification, ActionUpdate, ScopeOwn},
		)
	}
}

// NewEnforcer builds a synced casbin enforcer seeded with grants.
func NewEnforcer(grants []Grant) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}

	rules := make([][]string, 0, len(grants))
	for _, g := range grants {
		rules = append(rules, []string{string(g.Role), g.Resource, g.Action, g.Scope})
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, err
		}
	}
	return e, nil
}
