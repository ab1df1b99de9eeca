// Package domain holds the storage-agnostic rules of the booking platform.
// Repositories return the sentinel errors below so use cases can tell an
// expected miss from an infrastructure failure.
package domain

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("unique constraint violated")
	// ErrStale is returned by conditional updates when the row no longer
	// holds the status the caller read.
	ErrStale = errors.New("record changed concurrently")
)
