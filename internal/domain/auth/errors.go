package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthorized       = errors.New("could not validate credentials")
)
