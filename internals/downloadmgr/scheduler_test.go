package downloadmgr

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunBoundedConcurrency(t *testing.T) {
	var running, peak int32
	var mu sync.Mutex

	jobs := make([]Job, 500)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) error {
			now := atomic.AddInt32(&running, 1)
			mu.Lock()
			if now > peak {
				peak = now
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		}
	}

	if err := Run(context.Background(), jobs, 64); err != nil {
		t.Fatal(err)
	}
	if peak > 64 {
		t.Errorf("peak concurrency = %d, want <= 64", peak)
	}
}

func TestRunDrainsBeforeReturningError(t *testing.T) {
	var completed int32
	boom := errors.New("boom")

	jobs := make([]Job, 100)
	for i := range jobs {
		i := i
		jobs[i] = func(ctx context.Context) error {
			atomic.AddInt32(&completed, 1)
			if i == 3 {
				return boom
			}
			return nil
		}
	}

	err := Run(context.Background(), jobs, 8)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got := atomic.LoadInt32(&completed); got != 100 {
		t.Errorf("completed = %d, want all 100 (no sibling cancellation)", got)
	}
}

func TestRunReturnsFirstErrorByIndex(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	jobs := []Job{
		func(ctx context.Context) error { time.Sleep(10 * time.Millisecond); return errA },
		func(ctx context.Context) error { return errB },
	}
	if err := Run(context.Background(), jobs, 2); !errors.Is(err, errA) {
		t.Errorf("err = %v, want first queued error %v", err, errA)
	}
}
