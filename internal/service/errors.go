package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses; anything else is treated as a store failure.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role must be researcher or industry")
	ErrInvalidPostType    = errors.New("post type must be feature_request or research_topic")
	ErrInvalidPostStatus  = errors.New("status must be open, in_progress or completed")
	ErrOwnPostJoin        = errors.New("post author cannot join their own post")
	ErrPostCompleted      = errors.New("completed posts do not accept collaborators")
	ErrInvalidTransition  = errors.New("collaboration status transition not permitted")
	ErrEmptyContent       = errors.New("content cannot be empty")
	ErrContentTooLong     = errors.New("content is too long")
)
