package service

import "errors"

// ErrValidation marks user input problems; handlers answer 400.
var ErrValidation = errors.New("validation failed")

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("Admin account is inactive")
	ErrEmailTaken         = errors.New("an admin with this email already exists")
	ErrSetupDone          = errors.New("setup already completed")
	ErrForbidden          = errors.New("insufficient role")
)
