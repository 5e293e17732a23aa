package limitation

import (
	"log/slog"
	"time"
)

type config struct {
	limit          int64
	period         time.Duration
	prefix         string
	cookieName     string
	sessions       SessionReader
	sessionKey     string
	custom         KeyFunc
	remoteFallback bool
	resolvers      []KeyFunc
	resolversSet   bool
	onUnresolved   Policy
	onStoreError   Policy
	recorder       MetricsRecorder
	logger         *slog.Logger
	now            func() time.Time
}

// Option configures a Limiter. Options only record values; New
// validates the assembled configuration as a whole.
type Option func(*config)

// WithLimit sets the number of requests admitted per window.
func WithLimit(limit int64) Option {
	return func(c *config) { c.limit = limit }
}

// WithPeriod sets the window length. The period must be at least one
// second; the store protocol has second granularity.
func WithPeriod(period time.Duration) Option {
	return func(c *config) { c.period = period }
}

// WithKeyPrefix sets the prefix prepended to client keys in the
// shared store.
func WithKeyPrefix(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

// WithCookieName sets the cookie consulted by the default resolver
// chain.
func WithCookieName(name string) Option {
	return func(c *config) { c.cookieName = name }
}

// WithSessionKey enables session-based key resolution: the named
// attribute is looked up through sessions after the cookie resolver.
func WithSessionKey(sessions SessionReader, key string) Option {
	return func(c *config) {
		c.sessions = sessions
		if key != "" {
			c.sessionKey = key
		}
	}
}

// WithKeyFunc installs a custom extractor at the front of the default
// resolver chain, taking precedence over cookie and session lookup.
func WithKeyFunc(fn KeyFunc) Option {
	return func(c *config) { c.custom = fn }
}

// WithRemoteAddrFallback controls whether the default chain falls
// back to the request's network address when nothing else resolves.
// Enabled by default; disabling it makes requests without a cookie,
// session or custom key unmeterable, subject to the unresolved-key
// policy.
func WithRemoteAddrFallback(enabled bool) Option {
	return func(c *config) { c.remoteFallback = enabled }
}

// WithKeyResolvers replaces the default chain entirely. Resolvers are
// tried in the given order; first match wins.
func WithKeyResolvers(fns ...KeyFunc) Option {
	return func(c *config) {
		c.resolvers = fns
		c.resolversSet = true
	}
}

// WithUnresolvedKeyPolicy selects what the middleware does when no
// client key resolves. The default is FailClosed.
func WithUnresolvedKeyPolicy(p Policy) Option {
	return func(c *config) { c.onUnresolved = p }
}

// WithStoreFailurePolicy selects what the middleware does when the
// counting store is unavailable. The default is FailClosed: a
// strictness-over-availability choice, matching the deny-by-default
// posture of the rest of the library. Services that must stay up
// through a store outage should set FailOpen.
func WithStoreFailurePolicy(p Policy) Option {
	return func(c *config) { c.onStoreError = p }
}

// WithRecorder injects a metrics backend.
func WithRecorder(r MetricsRecorder) Option {
	return func(c *config) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger injects a structured logger. Logging is discarded by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
