package thermo

import "errors"

// Error classes. Failures wrap one of these; test with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrConfiguration    = errors.New("configuration error")
	ErrNotImplemented   = errors.New("not implemented")
)

// Warning is a non-fatal accuracy notice.
type Warning string

const (
	WarnDanglingDNAOnly Warning = "the default dangling ends parameters can efficiently account only for the DNA/DNA hybridisation; supply an alternative set"
	WarnMismatchDNAOnly Warning = "the default mismatches parameters can efficiently account only for the DNA/DNA hybridisation; supply an alternative set"
)
