package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User repository sentinels.
	ErrUserNotFound    = errors.New("user not found")
	ErrUserEmailExists = errors.New("user email already exists")

	// Record repository sentinels.
	ErrRecordNotFound = errors.New("record not found")

	// Value type repository sentinels.
	ErrValueTypeNotFound = errors.New("value type not found")
)
