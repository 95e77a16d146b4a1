// README: Concurrency tests for per-user turn serialization (run with -race).
package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"skybook/internal/types"
)

// TestConcurrentTurnsSingleActiveRecord fires near-simultaneous messages from
// one user and verifies the "at most one active record per user" invariant
// holds once the burst settles.
func TestConcurrentTurnsSingleActiveRecord(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	const turns = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make(chan error, turns)

	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := f.svc.HandleTurn(ctx, Turn{UserID: "u1", Text: fmt.Sprintf("message %d", i)})
			errs <- err
		}(i)
	}

	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected turn error: %v", err)
		}
	}
	if got := f.store.activeCount("u1"); got != 1 {
		t.Fatalf("active records = %d, want 1", got)
	}
	if f.store.creates != 1 {
		t.Fatalf("creates = %d, want 1", f.store.creates)
	}
}

// TestConcurrentTurnsDistinctUsers verifies different users do not serialize
// against each other and each ends with their own single active record.
func TestConcurrentTurnsDistinctUsers(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	const users = 6
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uid := fmt.Sprintf("user-%d", i)
			for j := 0; j < 3; j++ {
				if _, err := f.svc.HandleTurn(ctx, Turn{UserID: types.ID(uid), Text: "hello"}); err != nil {
					t.Errorf("user %s turn %d: %v", uid, j, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < users; i++ {
		uid := types.ID(fmt.Sprintf("user-%d", i))
		if got := f.store.activeCount(uid); got != 1 {
			t.Errorf("user %s active records = %d, want 1", uid, got)
		}
	}
}
