package model

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleSuperAdmin }

type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Role      Role
	LastLogin *time.Time
}

// UserInput is the user form. Password is write-only and required on create.
type UserInput struct {
	Name            string
	Email           string
	Phone           string
	Role            Role
	Password        string
	ConfirmPassword string
}

type Credentials struct {
	Email    string
	Password string
}

type ProfileInput struct {
	Name  string
	Email string
	Phone string
}

type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
}
