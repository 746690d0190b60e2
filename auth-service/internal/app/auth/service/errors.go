package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user with this username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrValidation         = errors.New("validation error")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInvalidToken       = errors.New("invalid token")
)
