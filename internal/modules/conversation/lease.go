// README: Per-user turn lease backed by Redis.
package conversation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skybook/internal/types"
)

const (
	leaseKeyPrefix  = "conversation:user:%s:lease"
	leaseRetryDelay = 50 * time.Millisecond
)

// Delete the lease only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// Lease serializes the read-merge-validate-persist sequence per user. Two
// near-simultaneous messages from the same user otherwise race on
// find-or-create and can spawn duplicate active records.
type Lease struct {
	redis   *redis.Client
	ttl     time.Duration
	maxWait time.Duration
}

func NewLease(r *redis.Client, ttl, maxWait time.Duration) *Lease {
	return &Lease{redis: r, ttl: ttl, maxWait: maxWait}
}

// Acquire blocks until the user's lease is free or maxWait elapses, returning
// a release func. The TTL bounds how long a crashed worker can hold a user
// hostage.
func (l *Lease) Acquire(ctx context.Context, userID types.ID) (func(), error) {
	key := fmt.Sprintf(leaseKeyPrefix, string(userID))
	token := newLeaseToken()
	deadline := time.Now().Add(l.maxWait)

	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lease: %w", err)
		}
		if ok {
			release := func() {
				// The turn context may already be cancelled; release anyway.
				_ = releaseScript.Run(context.Background(), l.redis, []string{key}, token).Err()
			}
			return release, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(leaseRetryDelay):
		}
	}
}

func newLeaseToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
