package types

import (
	"time"

	"github.com/google/uuid"
)

// Roles known to the application. Route groups are gated on these.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSecurity   = "security"
	RoleWeighing   = "weighing"
	RoleQc         = "qc"
)

func ValidRole(role string) bool {
	switch role {
	case RoleSuperadmin, RoleAdmin, RoleManager, RoleSecurity, RoleWeighing, RoleQc:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username  string    `gorm:"not null;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Role      string    `gorm:"not null;column:role" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
