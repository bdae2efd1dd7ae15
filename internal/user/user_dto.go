package user

import "time"

type CreateUserRequest struct {
	Name       string  `json:"name" binding:"required,max=255"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       string  `json:"role" binding:"required"`
	Department *string `json:"department" binding:"omitempty,max=255"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department *string   `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role.String(),
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}
