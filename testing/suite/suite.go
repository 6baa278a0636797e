package suite

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireDuration  = 300
	maxWaitDuration = 120 * time.Second
	testTimeout     = 30 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// container is the Redis shared by every test of a package run.
type container struct {
	once     sync.Once
	pool     *dockertest.Pool
	resource *dockertest.Resource
	client   *redis.Client
	err      error
}

var shared container

// Suite gives a test an empty Redis database.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

// Main runs the package tests and removes the Redis container afterwards.
// Call it from TestMain.
func Main(m *testing.M) {
	code := m.Run()

	if err := shared.purge(); err != nil {
		fmt.Fprintf(os.Stderr, "could not purge redis container: %v\n", err)
	}

	os.Exit(code)
}

// New starts the shared Redis on first use and flushes it for this test.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	shared.once.Do(shared.start)
	if shared.err != nil {
		t.Fatalf("could not start redis: %v", shared.err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	if err := shared.client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Storage: shared.client,
	}
}

// Seed writes a raw hash field, bypassing any repository.
func (that *Suite) Seed(ctx context.Context, key, field string, value any) {
	that.Helper()

	if err := that.Storage.HSet(ctx, key, field, value).Err(); err != nil {
		that.Fatalf("could not seed %s: %v", key, err)
	}
}

// TTL is the remaining lifetime of key; negative when it has none or is missing.
func (that *Suite) TTL(ctx context.Context, key string) time.Duration {
	that.Helper()

	ttl, err := that.Storage.TTL(ctx, key).Result()
	if err != nil {
		that.Fatalf("could not read ttl of %s: %v", key, err)
	}

	return ttl
}

func (that *Suite) Exists(ctx context.Context, key string) bool {
	that.Helper()

	n, err := that.Storage.Exists(ctx, key).Result()
	if err != nil {
		that.Fatalf("could not check %s: %v", key, err)
	}

	return n > 0
}

func (that *container) start() {
	pool, err := dockertest.NewPool("")
	if err != nil {
		that.err = fmt.Errorf("could not connect to docker: %w", err)
		return
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		// stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		that.err = fmt.Errorf("could not start resource: %w", err)
		return
	}

	that.pool = pool
	that.resource = resource

	// a crashed run leaves nothing behind for long
	_ = resource.Expire(expireDuration)

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})

	// the server in the container might not accept connections yet
	pool.MaxWait = maxWaitDuration
	if err = pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}); err != nil {
		_ = client.Close()
		that.err = fmt.Errorf("could not connect to redis: %w", err)
		return
	}

	that.client = client
}

func (that *container) purge() error {
	if that.client != nil {
		_ = that.client.Close()
	}

	if that.resource == nil {
		return nil
	}

	return that.pool.Purge(that.resource)
}
