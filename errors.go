package uangku

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by operations that target a nonexistent record.
// The ledger never silently drops such a call: callers that want to ignore a
// stale id can test for this sentinel.
var ErrNotFound = errors.New("not found")

// InUseError rejects a delete because the record is still referenced. The
// Reason is meant to be shown to the user as-is.
type InUseError struct {
	Entity string // "account" or "platform"
	Name   string
	Reason string
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s %q is in use: %s", e.Entity, e.Name, e.Reason)
}

// IsInUse reports whether err is a referential-integrity rejection.
func IsInUse(err error) bool {
	var e *InUseError
	return errors.As(err, &e)
}
