package auth

import "errors"

var (
	// Magic link consumption failures, in fail-fast order.
	ErrInvalidToken = errors.New("magic link token not found")
	ErrAlreadyUsed  = errors.New("magic link already used")
	ErrExpired      = errors.New("magic link expired")

	ErrRateLimited     = errors.New("resend cooldown not elapsed")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrAccountDisabled = errors.New("account is disabled")

	// Admin password path.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("admin privileges required")
	ErrBadSetupKey        = errors.New("invalid admin setup key")
	ErrEmailAlreadyExists = errors.New("email already exists")
)
