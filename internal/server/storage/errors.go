package storage

import "errors"

// Common storage errors.
var (
	// ErrUserNotFound indicates that the user was not found in storage.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this username already
	// exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that the refresh token was not found.
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrRowAlreadyExists indicates an insert hit an existing (owner, id)
	// pair. Clients treat this as success: another device created the row.
	ErrRowAlreadyExists = errors.New("row already exists")
)
