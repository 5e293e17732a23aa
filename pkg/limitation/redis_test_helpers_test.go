package limitation

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	testcontainers "github.com/testcontainers/testcontainers-go"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"
)

// newRedisClientForTest returns a client against REDIS_ADDR when set,
// and otherwise starts a throwaway Redis container. Tests skip when
// neither is available.
func newRedisClientForTest(t *testing.T) (goredis.UniversalClient, func()) {
	t.Helper()

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: addr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			t.Skipf("Skipping integration test: Redis at %s not available (%v)", addr, err)
		}
		return client, func() { _ = client.Close() }
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := rediscontainer.Run(ctx, "redis:7.2-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("container endpoint: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: endpoint})
	cleanup := func() {
		_ = client.Close()
		_ = container.Terminate(context.Background())
	}
	return client, cleanup
}
