// README: Redis lease tests (skipped without SKYBOOK_TEST_REDIS).
package conversation

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func setupTestLease(t *testing.T, ttl, maxWait time.Duration) *Lease {
	t.Helper()

	addr := os.Getenv("SKYBOOK_TEST_REDIS")
	if addr == "" {
		t.Skip("SKYBOOK_TEST_REDIS not set; skipping redis lease tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	return NewLease(client, ttl, maxWait)
}

func TestLeaseMutualExclusion(t *testing.T) {
	lease := setupTestLease(t, 5*time.Second, 200*time.Millisecond)
	ctx := context.Background()

	release, err := lease.Acquire(ctx, "u-lease")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := lease.Acquire(ctx, "u-lease"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second acquire: err = %v, want ErrBusy", err)
	}

	release()
	release2, err := lease.Acquire(ctx, "u-lease")
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	release2()
}

func TestLeaseDistinctUsersDoNotBlock(t *testing.T) {
	lease := setupTestLease(t, 5*time.Second, 200*time.Millisecond)
	ctx := context.Background()

	r1, err := lease.Acquire(ctx, "u-a")
	if err != nil {
		t.Fatalf("acquire u-a: %v", err)
	}
	defer r1()

	r2, err := lease.Acquire(ctx, "u-b")
	if err != nil {
		t.Fatalf("acquire u-b: %v", err)
	}
	r2()
}
