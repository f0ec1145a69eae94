package service

import "errors"

// Validation errors raised before the repository is called.
var (
	ErrEmptyContent = errors.New("task content cannot be empty")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidName  = errors.New(`name cannot contain "/"`)
	ErrReservedName = errors.New("name is reserved for the all-categories filter")
)
