package limitation

import "context"

// Result is the store-side outcome of one counting operation. Reset
// is an absolute unix timestamp in seconds, computed in the caller's
// time domain (the store only needs relative TTL semantics).
type Result struct {
	Limited   bool
	Remaining int64
	Reset     int64
}

// Store executes the atomic counting protocol: increment the counter
// at key, set its expiry to periodSecs if this call created it, read
// back the remaining TTL, and derive the admission result. The whole
// sequence must be a single indivisible step with respect to every
// other Count on the same key, store-wide — a get-then-set from the
// caller would race under concurrent load.
//
// The counter keeps incrementing past limit. A flooding client stays
// denied for the rest of the window, and the raw count doubles as a
// measure of how far over quota it went.
//
// nowSecs is supplied by the caller so Reset lands in the caller's
// clock; the store never reads its own wall clock for it.
type Store interface {
	Count(ctx context.Context, key string, limit, periodSecs, nowSecs int64) (Result, error)
}
