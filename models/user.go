package models

import (
	"time"
)

type UserRole string

const (
	RoleGuard    UserRole = "guard"
	RoleOperator UserRole = "operator"
	RoleAdmin    UserRole = "admin"
)

// roleLevels orders the roles by privilege. Privilege checks compare
// levels instead of matching role strings one by one, so a higher role
// always satisfies every lower gate.
var roleLevels = map[UserRole]int{
	RoleGuard:    1,
	RoleOperator: 2,
	RoleAdmin:    3,
}

func (r UserRole) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

func (r UserRole) Level() int {
	return roleLevels[r]
}

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"default:'guard'"`
	Active    bool      `json:"active" gorm:"default:true"`
	Superuser bool      `json:"superuser" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// The predicates below only consult the user snapshot itself, never the
// database, so they are safe to evaluate on claims rebuilt from a token.

func (u *User) IsAdmin() bool {
	return u.Role.Level() >= roleLevels[RoleAdmin] || u.Superuser
}

func (u *User) IsOperator() bool {
	return u.Role.Level() >= roleLevels[RoleOperator] || u.Superuser
}

func (u *User) IsGuardOrHigher() bool {
	return u.Role.Level() >= roleLevels[RoleGuard] || u.Superuser
}
