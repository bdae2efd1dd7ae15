package domain

// Actor is the authenticated caller as resolved by the credential service.
type Actor struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
