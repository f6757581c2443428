package models

import "time"

// Valid user roles. Role enforcement happens in the HTTP middleware;
// services only use the user as an ownership reference.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleSuperUser = "super-user"
)

// User represents an authenticated user of the backend.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Roles     []string  `json:"roles" gorm:"serializer:json" validate:"omitempty,dive,oneof=user admin super-user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
