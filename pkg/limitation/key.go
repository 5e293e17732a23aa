package limitation

import (
	"net"
	"net/http"
)

// KeyFunc derives the client key for a request. A false return means
// the strategy has no key for this request and the next resolver in
// the chain is consulted.
type KeyFunc func(r *http.Request) (string, bool)

// SessionReader looks up a named value in whatever session mechanism
// the application attaches to its requests. Implementations must be
// safe for concurrent use.
type SessionReader interface {
	Get(r *http.Request, key string) (string, bool)
}

// CookieKey identifies clients by the value of a named cookie.
func CookieKey(name string) KeyFunc {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// SessionKey identifies clients by a session attribute.
func SessionKey(sessions SessionReader, key string) KeyFunc {
	return func(r *http.Request) (string, bool) {
		if sessions == nil {
			return "", false
		}
		v, ok := sessions.Get(r, key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// RemoteAddrKey identifies clients by the originating network
// address, so every request resolves to some key. Intended as the
// last entry in the chain.
func RemoteAddrKey() KeyFunc {
	return func(r *http.Request) (string, bool) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host == "" {
			return "", false
		}
		return host, true
	}
}

// resolveKey walks the configured chain in order; first match wins.
func (l *Limiter) resolveKey(r *http.Request) (string, bool) {
	for _, fn := range l.keyFns {
		if key, ok := fn(r); ok {
			return key, true
		}
	}
	return "", false
}
