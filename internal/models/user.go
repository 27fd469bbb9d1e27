package models

import "time"

// Roles a user can hold.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// Account statuses. Only active accounts may use protected routes.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusBanned    = "banned"
)

// User represents an account in the store.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:customer" validate:"omitempty,oneof=customer vendor admin"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:active" validate:"omitempty,oneof=active suspended banned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u *User) IsVendor() bool   { return u.Role == RoleVendor }
func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }
func (u *User) IsActive() bool   { return u.Status == StatusActive }

// HasAnyRole reports whether the user's role is one of roles.
func (u *User) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
