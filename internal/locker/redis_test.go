package locker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisLocker is skipped unless REDIS_ADDR points at a server. Keys get
// a per-test prefix so runs never share locks.
func newRedisLocker(t *testing.T, ttl time.Duration) *Redis {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedis(client, ttl)
	l.Prefix = fmt.Sprintf("locktest:%d:", time.Now().UnixNano())
	return l
}

func TestRedisExcludesSameKey(t *testing.T) {
	l := newRedisLocker(t, 5*time.Second)
	var inside, overlaps int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			release, err := l.Lock(ctx, "u1")
			if !assert.NoError(t, err) {
				return
			}
			if atomic.AddInt32(&inside, 1) > 1 {
				atomic.AddInt32(&overlaps, 1)
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()
	assert.Zero(t, overlaps)
}

func TestRedisLockHonoursContext(t *testing.T) {
	l := newRedisLocker(t, 5*time.Second)
	release, err := l.Lock(context.Background(), "u1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "u1")
	assert.True(t, errors.Is(err, ErrNotAcquired))
}

func TestRedisReleaseKeepsLockTakenOverAfterExpiry(t *testing.T) {
	l := newRedisLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	stale, err := l.Lock(ctx, "u1")
	require.NoError(t, err)
	time.Sleep(200 * time.Millisecond)

	l.TTL = 5 * time.Second
	fresh, err := l.Lock(ctx, "u1")
	require.NoError(t, err)
	defer fresh()

	stale() // must not delete the new holder's key
	n, err := l.Client.Exists(ctx, l.Prefix+"u1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
