// Package apierrors holds business-rule failures surfaced to callers with a
// machine-readable reason.
package apierrors

import (
	"errors"
	"fmt"
)

// Reason classifies a business-rule failure.
type Reason string

const (
	ReasonUsernameTaken      Reason = "exists"
	ReasonBackendUnavailable Reason = "backend_unavailable"
	ReasonInvalidCredentials Reason = "invalid_credentials"
	ReasonSelfDeletion       Reason = "self_deletion"
	ReasonUserNotFound       Reason = "user_not_found"
	ReasonPostNotFound       Reason = "post_not_found"
	ReasonCommentNotFound    Reason = "comment_not_found"
	ReasonForbidden          Reason = "forbidden"
	ReasonInvalidArgument    Reason = "invalid_argument"
	ReasonUnauthenticated    Reason = "unauthenticated"
)

// APIError is a structured failure with a reason and a human message.
type APIError struct {
	Reason  Reason
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ReasonOf returns the reason of the first APIError in err's chain.
func ReasonOf(err error) (Reason, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Reason, true
	}
	return "", false
}

// Is reports whether err carries the given reason.
func Is(err error, reason Reason) bool {
	r, ok := ReasonOf(err)
	return ok && r == reason
}

func NewErrUsernameTaken(username string) *APIError {
	return &APIError{Reason: ReasonUsernameTaken, Message: fmt.Sprintf("username %q is already taken", username)}
}

func NewErrBackendUnavailable(op string, err error) *APIError {
	return &APIError{Reason: ReasonBackendUnavailable, Message: fmt.Sprintf("backend unavailable: %s", op), Err: err}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Reason: ReasonInvalidCredentials, Message: "invalid username or password"}
}

func NewErrSelfDeletion() *APIError {
	return &APIError{Reason: ReasonSelfDeletion, Message: "administrators cannot delete themselves"}
}

func NewErrUserNotFound(username string) *APIError {
	return &APIError{Reason: ReasonUserNotFound, Message: fmt.Sprintf("user %q not found", username)}
}

func NewErrPostNotFound(id string) *APIError {
	return &APIError{Reason: ReasonPostNotFound, Message: fmt.Sprintf("post %q not found", id)}
}

func NewErrCommentNotFound(id string) *APIError {
	return &APIError{Reason: ReasonCommentNotFound, Message: fmt.Sprintf("comment %q not found", id)}
}

func NewErrForbidden(action string) *APIError {
	return &APIError{Reason: ReasonForbidden, Message: fmt.Sprintf("not allowed to %s", action)}
}

func NewErrInvalidArgument(msg string) *APIError {
	return &APIError{Reason: ReasonInvalidArgument, Message: msg}
}

func NewErrUnauthenticated() *APIError {
	return &APIError{Reason: ReasonUnauthenticated, Message: "not logged in"}
}
