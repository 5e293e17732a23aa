package limitation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// Limiter issues admission decisions against a shared counting store.
// It is immutable after New and safe for concurrent use; all mutable
// state lives in the store.
type Limiter struct {
	store        Store
	limit        int64
	period       time.Duration
	prefix       string
	keyFns       []KeyFunc
	onUnresolved Policy
	onStoreError Policy
	recorder     MetricsRecorder
	logger       *slog.Logger
	now          func() time.Time
}

// New validates the configuration and returns a Limiter. Invalid
// policy values fail here, never at request time.
func New(store Store, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	cfg := config{
		limit:          DefaultLimit,
		period:         DefaultPeriod,
		prefix:         DefaultKeyPrefix,
		cookieName:     DefaultCookieName,
		sessionKey:     DefaultSessionKey,
		remoteFallback: true,
		onUnresolved:   FailClosed,
		onStoreError:   FailClosed,
		recorder:       NoOpMetricsRecorder{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if cfg.period < time.Second {
		// The store protocol speaks whole seconds.
		return nil, ErrInvalidPeriod
	}

	keyFns := cfg.resolvers
	if !cfg.resolversSet {
		keyFns = defaultChain(cfg)
	}
	if len(keyFns) == 0 {
		return nil, ErrNoKeyResolvers
	}

	return &Limiter{
		store:        store,
		limit:        cfg.limit,
		period:       cfg.period,
		prefix:       cfg.prefix,
		keyFns:       keyFns,
		onUnresolved: cfg.onUnresolved,
		onStoreError: cfg.onStoreError,
		recorder:     cfg.recorder,
		logger:       cfg.logger,
		now:          cfg.now,
	}, nil
}

// defaultChain composes resolvers in precedence order: custom
// extractor, cookie, session (when a SessionReader is configured),
// network address as last resort.
func defaultChain(cfg config) []KeyFunc {
	var fns []KeyFunc
	if cfg.custom != nil {
		fns = append(fns, cfg.custom)
	}
	fns = append(fns, CookieKey(cfg.cookieName))
	if cfg.sessions != nil {
		fns = append(fns, SessionKey(cfg.sessions, cfg.sessionKey))
	}
	if cfg.remoteFallback {
		fns = append(fns, RemoteAddrKey())
	}
	return fns
}

// Limit reports the configured per-window quota.
func (l *Limiter) Limit() int64 { return l.limit }

// Period reports the configured window length.
func (l *Limiter) Period() time.Duration { return l.period }

// Count consumes one unit of quota for key and reports the decision.
// It is the raw entry point for callers that want admission decisions
// without the middleware wrapper.
//
// Every call reaches the shared store; the count is never cached
// locally, because rejecting the N+1-th request exactly depends on a
// global view of the counter. If ctx is cancelled while the store
// call is outstanding, the increment may still have happened server
// side — there is no compensating decrement, so a cancelled request
// can still consume one unit of quota.
func (l *Limiter) Count(ctx context.Context, key string) (Decision, error) {
	start := time.Now()
	now := l.now()

	res, err := l.store.Count(ctx, l.prefix+key, l.limit, int64(l.period/time.Second), now.Unix())

	l.recorder.Add("limitation.count", 1, nil)
	l.recorder.Observe("limitation.latency", time.Since(start).Seconds(), nil)

	if err != nil {
		var serr *StoreError
		if !errors.As(err, &serr) {
			err = &StoreError{Op: "count", Err: err}
		}
		return Decision{}, err
	}

	return Decision{
		Limited:   res.Limited,
		Remaining: res.Remaining,
		ResetAt:   time.Unix(res.Reset, 0),
	}, nil
}
