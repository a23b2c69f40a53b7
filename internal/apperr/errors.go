// Package apperr holds the sentinel errors shared by the service layer and
// its HTTP and MCP front ends. Wrap them with fmt.Errorf and test with
// errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound means the requested document does not exist in the index.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means a caller-supplied parameter was rejected.
	ErrInvalidInput = errors.New("invalid input")
)
