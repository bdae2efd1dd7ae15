package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// PredefinedRole is one of the roles the access policy knows about.
type PredefinedRole string

const (
	RoleEmployee       PredefinedRole = "Employee"
	RoleManager        PredefinedRole = "Manager"
	RoleAdmin          PredefinedRole = "Admin"
	RoleHROfficer      PredefinedRole = "HR Officer"
	RolePayrollOfficer PredefinedRole = "Payroll Officer"
)

var predefinedRoles = []PredefinedRole{
	RoleEmployee,
	RoleManager,
	RoleAdmin,
	RoleHROfficer,
	RolePayrollOfficer,
}

func PredefinedRoles() []PredefinedRole {
	out := make([]PredefinedRole, len(predefinedRoles))
	copy(out, predefinedRoles)
	return out
}

// Role is either a PredefinedRole or a free-text custom role. The zero value
// is an empty custom role and is never granted anything.
type Role struct {
	predefined PredefinedRole
	custom     string
}

func Predefined(r PredefinedRole) Role {
	return Role{predefined: r}
}

func Custom(name string) Role {
	return Role{custom: strings.TrimSpace(name)}
}

// ParseRole matches predefined names case-insensitively; anything else is custom.
func ParseRole(s string) Role {
	s = strings.TrimSpace(s)
	for _, r := range predefinedRoles {
		if strings.EqualFold(s, string(r)) {
			return Predefined(r)
		}
	}
	return Custom(s)
}

// ParsePredefinedRole is used where custom roles are not accepted (user
// creation, role changes).
func ParsePredefinedRole(s string) (Role, error) {
	r := ParseRole(s)
	if _, ok := r.Predefined(); !ok {
		return Role{}, fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Predefined() (PredefinedRole, bool) {
	return r.predefined, r.predefined != ""
}

func (r Role) IsCustom() bool {
	return r.predefined == ""
}

func (r Role) Is(p PredefinedRole) bool {
	return r.predefined != "" && r.predefined == p
}

func (r Role) IsAny(ps ...PredefinedRole) bool {
	for _, p := range ps {
		if r.Is(p) {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	if r.predefined != "" {
		return string(r.predefined)
	}
	return r.custom
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}

// Value stores the role as its display name.
func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = Role{}
	case string:
		*r = ParseRole(v)
	case []byte:
		*r = ParseRole(string(v))
	default:
		return fmt.Errorf("domain.Role: cannot scan %T", src)
	}
	return nil
}
