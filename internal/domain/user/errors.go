package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidUserRole   = errors.New("invalid user role")
)
