// Package limitation provides distributed request-admission control
// using a fixed-window counter in a shared store.
//
// The primary entry points are the raw counting call:
//
//	dec, err := l.Count(ctx, key)
//
// and the net/http middleware:
//
//	handler := limitation.Middleware(l)(next)
//
// The returned Decision contains whether the client is over quota,
// how many requests remain in the current window, and the absolute
// time the window resets, ready to be rendered as rate-limit headers.
//
// # Overview
//
// This package implements a fixed-window counter:
//
//   - Each client key has a counter in the shared store.
//   - The first increment of a window creates the counter and sets
//     its expiry to the configured period.
//   - Every request increments the counter; once it exceeds the
//     limit, requests are denied until the store expires the counter.
//
// Fixed windows are simple and cheap (one store round trip, one
// integer per client) but allow bursts at window boundaries: a client
// can spend a full quota at the end of one window and another at the
// start of the next. That characteristic is inherent to the scheme,
// not a defect this package tries to smooth over.
//
// # The counting protocol
//
// Correctness under concurrency rests on one property: the
// increment, the conditional expiry and the TTL read-back execute as
// a single indivisible step inside the store. A get-then-set from
// the caller would let two concurrent requests both observe
// count < limit and both proceed — the classic check-then-act race.
// RedisStore pushes the whole sequence into a Lua script; the store's
// atomicity totally orders increments per key across every process in
// the fleet, so no client-side locking is needed or wanted.
//
// The counter deliberately keeps incrementing past the limit. A
// client that floods past its quota stays denied for the remainder of
// the window instead of racing other traffic for the next free slot,
// and the raw count doubles as a diagnostic of how far over quota it
// went.
//
// # Backends
//
// Two Store implementations share the same contract:
//
//   - RedisStore: the production backend. Safe across many
//     application instances; enforces one global budget per key.
//   - MemoryStore: an in-process backend for unit tests, local
//     development and single-instance deployments. It simulates TTL
//     eviction with explicit expiry timestamps and is atomic under a
//     mutex, but its state is local to the process.
//
// If Redis evicts a counter early under memory pressure, the next
// increment simply starts a fresh window. A dropped counter can only
// make the system more permissive, never less — the safe failure
// direction.
//
// # Client keys
//
// "Who is the client" is an ordered chain of resolution strategies;
// the first one that yields a key wins. The default chain is a custom
// extractor (when configured with WithKeyFunc), the "sid" cookie, the
// "rate-api-id" session attribute (when a SessionReader is
// configured), and finally the request's network address so every
// request has some key. WithKeyResolvers replaces the chain outright
// for full control over selection and order.
//
// # Fail-open versus fail-closed
//
// Two situations force an availability/strictness tradeoff, and both
// are explicit configuration choices rather than buried defaults:
//
//   - No key resolves (possible once the address fallback is
//     disabled): WithUnresolvedKeyPolicy.
//   - The store call fails: WithStoreFailurePolicy.
//
// Both default to FailClosed — requests are denied — which keeps the
// limiter strict at the cost of availability during a store outage.
// Services that would rather shed the limiter than shed traffic
// should set FailOpen; degraded admissions are logged and counted so
// the outage is visible.
//
// Lower layers never apply these policies themselves: Count returns a
// *StoreError untouched and the middleware is the single place
// failure policy is applied.
//
// # Decision semantics
//
//   - Limited reports whether the request exceeded the quota.
//   - Remaining is max(0, limit - count) after this call.
//   - ResetAt is the caller's clock plus the counter's observed TTL;
//     the store only ever deals in relative TTLs.
//   - RetryAfter(now) derives the wait a denied client should honor.
//
// A request cancelled after the counting step still consumed one unit
// of quota; there is no compensating decrement.
//
// # Configuration
//
// The Limiter is configured with functional options and validated
// eagerly by New:
//
//	l, err := limitation.New(store,
//		limitation.WithLimit(100),
//		limitation.WithPeriod(time.Minute),
//		limitation.WithCookieName("sid"),
//		limitation.WithStoreFailurePolicy(limitation.FailOpen),
//		limitation.WithRecorder(rec),
//		limitation.WithLogger(logger),
//	)
//
// A zero limit, a sub-second period or an empty resolver chain fail
// at construction; request-time failures only ever originate from the
// store or from genuinely per-request conditions.
//
// # Observability
//
// Metrics flow through the MetricsRecorder interface; the package
// ships a no-op recorder and a Prometheus-backed one. Logging uses
// log/slog and is discarded unless WithLogger is given.
package limitation
