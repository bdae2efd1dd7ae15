package rbac

import "go-hrops/internal/domain"

type AuthorizeRequest struct {
	Actor    domain.Actor
	Resource string
	Action   string
	// TargetUserID is the owner of the row being written, or the caller's
	// explicit ?user_id= filter on reads. Nil means "no filter requested".
	TargetUserID *uint
	// RequestedRole is set for user creation and role changes.
	RequestedRole *domain.Role
}

type Decision struct {
	Allowed bool
	// ScopeFilter is the user id reads must be restricted to; nil means all rows.
	ScopeFilter *uint
	Reason      string
}

type PermissionResponse struct {
	Role        string  `json:"role"`
	Permissions []Grant `json:"permissions"`
}
