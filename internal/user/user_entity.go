package user

import (
	"time"

	"go-hrops/internal/domain"
)

type User struct {
	ID         uint        `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string      `gorm:"column:name;type:varchar(255);not null"`
	Email      string      `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password   string      `gorm:"column:password;type:text;not null"`
	Role       domain.Role `gorm:"column:role;type:varchar(50);not null"`
	Department *string     `gorm:"column:department;type:varchar(255)"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Actor is the identity the rest of the system sees for this user.
func (u User) Actor() domain.Actor {
	return domain.Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}
