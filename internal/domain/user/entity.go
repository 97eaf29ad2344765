package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account able to sign in and receive notifications.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	PasswordHashed string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role determines what a user can see and which automatic alerts reach them.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleManager       Role = "manager"
	RoleDriver        Role = "driver"
	RoleMechanic      Role = "mechanic"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleManager, RoleDriver, RoleMechanic:
		return true
	}
	return false
}
