package limitation

import "errors"

// Configuration errors returned by New. They are detected at build
// time and never surface per-request.
var (
	ErrNilStore       = errors.New("limitation: store is required")
	ErrInvalidLimit   = errors.New("limitation: limit must be positive")
	ErrInvalidPeriod  = errors.New("limitation: period must be at least one second")
	ErrNoKeyResolvers = errors.New("limitation: at least one key resolver is required")
)

// StoreError wraps a failure talking to the shared counting store.
// Op is "connect" for connectivity failures detected at construction
// and "count" for failures of the counting operation itself.
//
// The limiter never converts a StoreError into an admit or deny on
// its own; the middleware applies the configured store-failure
// policy, and direct Count callers decide for themselves.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "limitation: store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
