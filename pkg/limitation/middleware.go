package limitation

import (
	"math"
	"net/http"
	"strconv"
)

// Response headers set by the middleware.
const (
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"
)

// Middleware wraps next with admission control.
//
// Per request it resolves the client key, counts one unit against the
// shared store, and either forwards the request annotated with
// X-RateLimit-* headers or short-circuits with 429 Too Many Requests
// and a Retry-After hint. Denials look the same to clients whether
// they come from quota exhaustion, an unresolvable key under
// FailClosed, or a store outage under FailClosed; the reason is
// distinguishable in logs and metrics.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := l.resolveKey(r)
			if !ok {
				if l.onUnresolved == FailOpen {
					l.admitUnmetered(r, ReasonUnresolved)
					next.ServeHTTP(w, r)
					return
				}
				l.deny(w, r, Decision{Limited: true, ResetAt: l.now().Add(l.period)}, ReasonUnresolved)
				return
			}

			dec, err := l.Count(r.Context(), key)
			if err != nil {
				if l.onStoreError == FailOpen {
					l.logger.Warn("counting store unavailable, admitting unmetered",
						"error", err, "path", r.URL.Path)
					l.admitUnmetered(r, ReasonStoreUnavailable)
					next.ServeHTTP(w, r)
					return
				}
				l.logger.Warn("counting store unavailable, denying",
					"error", err, "path", r.URL.Path)
				l.deny(w, r, Decision{Limited: true, ResetAt: l.now().Add(l.period)}, ReasonStoreUnavailable)
				return
			}

			if dec.Limited {
				l.deny(w, r, dec, ReasonQuota)
				return
			}

			setHeaders(w, l.limit, dec)
			l.recorder.Add("limitation.decision", 1, map[string]string{"outcome": "admitted", "reason": ""})
			next.ServeHTTP(w, r)
		})
	}
}

// admitUnmetered records a degraded admission: the request proceeds
// without consuming quota, so no X-RateLimit headers are attached.
func (l *Limiter) admitUnmetered(r *http.Request, reason Reason) {
	l.recorder.Add("limitation.decision", 1, map[string]string{"outcome": "admitted", "reason": string(reason)})
	l.logger.Debug("request admitted unmetered", "reason", string(reason), "path", r.URL.Path)
}

func (l *Limiter) deny(w http.ResponseWriter, r *http.Request, dec Decision, reason Reason) {
	setHeaders(w, l.limit, dec)
	retry := dec.RetryAfter(l.now())
	w.Header().Set("Retry-After", strconv.FormatInt(int64(math.Ceil(retry.Seconds())), 10))

	l.recorder.Add("limitation.decision", 1, map[string]string{"outcome": "denied", "reason": string(reason)})
	l.logger.Info("request denied", "reason", string(reason), "path", r.URL.Path,
		"reset_at", dec.ResetAt)

	http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
}

func setHeaders(w http.ResponseWriter, limit int64, dec Decision) {
	h := w.Header()
	h.Set(HeaderLimit, strconv.FormatInt(limit, 10))
	h.Set(HeaderRemaining, strconv.FormatInt(dec.Remaining, 10))
	h.Set(HeaderReset, strconv.FormatInt(dec.ResetAt.Unix(), 10))
}
