package store

import "errors"

// ErrNotFound is returned by Get when no value exists under the key.
// Callers should test with errors.Is to handle wrapped instances.
var ErrNotFound = errors.New("store: key not found")

// IsNotFound reports whether err indicates a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
