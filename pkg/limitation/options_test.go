package limitation

import (
	"errors"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	l, err := New(NewMemoryStore())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if l.Limit() != DefaultLimit {
		t.Errorf("limit = %d, want %d", l.Limit(), DefaultLimit)
	}
	if l.Period() != DefaultPeriod {
		t.Errorf("period = %v, want %v", l.Period(), DefaultPeriod)
	}
	if l.prefix != DefaultKeyPrefix {
		t.Errorf("prefix = %q, want %q", l.prefix, DefaultKeyPrefix)
	}
	if l.onUnresolved != FailClosed || l.onStoreError != FailClosed {
		t.Error("both failure policies should default to fail-closed")
	}
	// Default chain: cookie then address fallback.
	if len(l.keyFns) != 2 {
		t.Errorf("default chain length = %d, want 2", len(l.keyFns))
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"ZeroLimit", []Option{WithLimit(0)}, ErrInvalidLimit},
		{"NegativeLimit", []Option{WithLimit(-5)}, ErrInvalidLimit},
		{"ZeroPeriod", []Option{WithPeriod(0)}, ErrInvalidPeriod},
		{"SubSecondPeriod", []Option{WithPeriod(500 * time.Millisecond)}, ErrInvalidPeriod},
		{"EmptyResolverChain", []Option{WithKeyResolvers()}, ErrNoKeyResolvers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(NewMemoryStore(), tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_NilStore(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilStore) {
		t.Errorf("New(nil) error = %v, want %v", err, ErrNilStore)
	}
}

func TestNew_DisabledFallbackShortensChain(t *testing.T) {
	l, err := New(NewMemoryStore(), WithRemoteAddrFallback(false))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if len(l.keyFns) != 1 {
		t.Errorf("chain length = %d, want 1 (cookie only)", len(l.keyFns))
	}
}

func TestNew_SessionKeyDefaultsName(t *testing.T) {
	sessions := stubSessions{DefaultSessionKey: "sess-1"}
	l, err := New(NewMemoryStore(), WithSessionKey(sessions, ""))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	// custom absent: cookie, session, address.
	if len(l.keyFns) != 3 {
		t.Fatalf("chain length = %d, want 3", len(l.keyFns))
	}
}
