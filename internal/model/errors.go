package model

import "errors"

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrRemoteUnavailable wraps every failure reported by the remote backend.
	ErrRemoteUnavailable = errors.New("remote backend unavailable")
)
