package models

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrEmailTaken         = errors.New("user with email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation wraps document validation failures so handlers can
	// forward the message without inspecting its text.
	ErrValidation = errors.New("validation failed")
)
