package limitation

import "time"

// Defaults applied by New when the corresponding option is not given.
const (
	// DefaultLimit is the default number of requests admitted per window.
	DefaultLimit int64 = 5000

	// DefaultPeriod is the default window length.
	DefaultPeriod = 3600 * time.Second

	// DefaultCookieName is the cookie consulted by the default key
	// resolver chain.
	DefaultCookieName = "sid"

	// DefaultSessionKey is the session attribute consulted when
	// session-based resolution is configured.
	DefaultSessionKey = "rate-api-id"

	// DefaultKeyPrefix namespaces counter keys in the shared store.
	DefaultKeyPrefix = "limitation:"
)

// Decision is the outcome of counting one unit against a client key.
//
// Remaining is the quota left in the current window after this call
// (0 when Limited). ResetAt is the absolute time the window ends and
// the counter is evicted by the store.
type Decision struct {
	Limited   bool
	Remaining int64
	ResetAt   time.Time
}

// RetryAfter reports how long a denied client should wait before the
// window resets. It returns 0 for admitted decisions.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if !d.Limited {
		return 0
	}
	wait := d.ResetAt.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait
}

// Reason classifies why the middleware denied or degraded a request.
// Denials look uniform to clients; the reason is kept for logs and
// metrics.
type Reason string

const (
	// ReasonQuota: the client exhausted its window quota.
	ReasonQuota Reason = "quota"

	// ReasonUnresolved: no key resolver produced a client key and the
	// unresolved-key policy is FailClosed.
	ReasonUnresolved Reason = "unresolved_key"

	// ReasonStoreUnavailable: the counting store call failed and the
	// store-failure policy is FailClosed.
	ReasonStoreUnavailable Reason = "store_unavailable"
)

// Policy selects behavior when admission cannot be decided normally:
// deny the request (FailClosed) or let it through unmetered
// (FailOpen). It applies to unresolved client keys and to counting
// store failures, configured independently.
type Policy int

const (
	// FailClosed denies requests when admission cannot be decided.
	FailClosed Policy = iota

	// FailOpen admits requests when admission cannot be decided.
	FailOpen
)

func (p Policy) String() string {
	if p == FailOpen {
		return "fail_open"
	}
	return "fail_closed"
}
