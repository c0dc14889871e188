package errors

import "errors"

// Failure categories with operator guidance.
var (
	// ErrNotAuthenticated indicates the API rejected the token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied indicates the token lacks a required permission.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates the run or artifact does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConnectionFailed indicates the API is unreachable.
	ErrConnectionFailed = errors.New("connection failed")
)
