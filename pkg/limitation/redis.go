package limitation

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed fixed_window.lua
var fixedWindowSource string

var fixedWindowScript = redis.NewScript(fixedWindowSource)

// RedisStore runs the fixed-window counting protocol against Redis.
//
// The increment, conditional expiry and TTL read-back execute as one
// Lua script, so concurrent counts on the same key are totally
// ordered by Redis regardless of which process issued them. Counts on
// different keys carry no ordering guarantee and may be in flight
// concurrently.
type RedisStore struct {
	client redis.UniversalClient
	script *redis.Script
}

// NewRedisStore verifies connectivity and returns a store backed by
// client. The client and its connection pool are externally managed;
// the store borrows a connection per call and never holds one across
// requests.
func NewRedisStore(client redis.UniversalClient) (*RedisStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &StoreError{Op: "connect", Err: err}
	}

	return &RedisStore{
		client: client,
		script: fixedWindowScript,
	}, nil
}

// Count implements Store. Run uses EVALSHA and falls back to EVAL
// when the script cache was cleared, so a Redis restart does not
// surface as a NOSCRIPT error.
func (s *RedisStore) Count(ctx context.Context, key string, limit, periodSecs, nowSecs int64) (Result, error) {
	res, err := s.script.Run(ctx, s.client, []string{key}, limit, periodSecs, nowSecs).Result()
	if err != nil {
		return Result{}, &StoreError{Op: "count", Err: err}
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 3 {
		return Result{}, &StoreError{Op: "count", Err: fmt.Errorf("unexpected script result: %T", res)}
	}

	limited, err := asInt64(values[0])
	if err != nil {
		return Result{}, &StoreError{Op: "count", Err: fmt.Errorf("parsing limited flag: %w", err)}
	}
	remaining, err := asInt64(values[1])
	if err != nil {
		return Result{}, &StoreError{Op: "count", Err: fmt.Errorf("parsing remaining: %w", err)}
	}
	reset, err := asInt64(values[2])
	if err != nil {
		return Result{}, &StoreError{Op: "count", Err: fmt.Errorf("parsing reset: %w", err)}
	}

	return Result{
		Limited:   limited == 1,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}

func asInt64(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse int64 from %q: %w", x, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}
