package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Validation errors
	ErrEmptyTitle      = errors.New("task title is required")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")

	// Template errors
	ErrTemplateNotFound = errors.New("template not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)
