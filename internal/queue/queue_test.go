package queue_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"juicery/internal/faults"
	"juicery/internal/queue"
)

func TestPutPollPreservesFIFO(t *testing.T) {
	ctx := context.Background()
	q := queue.New[int](10)
	for i := 1; i <= 5; i++ {
		if err := q.Put(ctx, i); err != nil {
			t.Fatalf("Put(%d) returned error: %v", i, err)
		}
	}
	if q.Len() != 5 {
		t.Fatalf("expected 5 queued items, got %d", q.Len())
	}

	var got []int
	for {
		item, ok, err := q.Poll(ctx, 10*time.Millisecond)
		if err != nil {
			t.Fatalf("Poll returned error: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, item)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestPollTimesOutOnEmptyQueue(t *testing.T) {
	q := queue.New[string](1)
	start := time.Now()
	item, ok, err := q.Poll(context.Background(), 30*time.Millisecond)
	if err != nil {
		t.Fatalf("Poll returned error: %v", err)
	}
	if ok || item != "" {
		t.Fatalf("expected empty poll, got %q ok=%v", item, ok)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("expected poll to wait for the timeout, returned after %s", elapsed)
	}
}

func TestPollWithoutTimeoutDoesNotBlock(t *testing.T) {
	q := queue.New[int](0)
	if _, ok, err := q.Poll(context.Background(), 0); ok || err != nil {
		t.Fatalf("expected immediate empty result, got ok=%v err=%v", ok, err)
	}
}

func TestPollWakesWhenItemArrives(t *testing.T) {
	ctx := context.Background()
	q := queue.New[int](1)
	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = q.Put(ctx, 7)
	}()
	item, ok, err := q.Poll(ctx, 2*time.Second)
	if err != nil || !ok || item != 7 {
		t.Fatalf("expected to receive 7, got %d ok=%v err=%v", item, ok, err)
	}
}

func TestPutBlocksUntilSpace(t *testing.T) {
	ctx := context.Background()
	q := queue.New[int](1)
	if err := q.Put(ctx, 1); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	delivered := make(chan struct{})
	go func() {
		_ = q.Put(ctx, 2)
		close(delivered)
	}()

	select {
	case <-delivered:
		t.Fatal("expected Put to block on a full queue")
	case <-time.After(30 * time.Millisecond):
	}

	if item, ok, _ := q.Poll(ctx, time.Second); !ok || item != 1 {
		t.Fatalf("expected head 1, got %d ok=%v", item, ok)
	}
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("blocked Put was not released after Poll")
	}
	if q.Len() != 1 {
		t.Fatalf("expected one item after release, got %d", q.Len())
	}
}

func TestPutInterruptedByContext(t *testing.T) {
	q := queue.New[int](1)
	if err := q.Put(context.Background(), 1); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := q.Put(ctx, 2)
	if !faults.IsInterrupted(err) {
		t.Fatalf("expected interrupted error, got %v", err)
	}
	if q.Len() != 1 {
		t.Fatalf("interrupted Put must not enqueue, len=%d", q.Len())
	}
}

func TestPollInterruptedByContext(t *testing.T) {
	q := queue.New[int](1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := q.Poll(ctx, time.Second)
	if ok || !faults.IsInterrupted(err) {
		t.Fatalf("expected interrupted poll, got ok=%v err=%v", ok, err)
	}
}

func TestBackpressureNeverExceedsCapacity(t *testing.T) {
	const capacity = 10
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := queue.New[int](capacity)

	var maxSeen atomic.Int64
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if err := q.Put(ctx, i); err != nil {
					return
				}
				if n := int64(q.Len()); n > maxSeen.Load() {
					maxSeen.Store(n)
				}
			}
		}()
	}

	consumed := 0
	for consumed < 200 {
		if _, ok, err := q.Poll(ctx, time.Second); err != nil {
			t.Fatalf("Poll returned error: %v", err)
		} else if ok {
			consumed++
			time.Sleep(100 * time.Microsecond)
		}
		if n := q.Len(); n > capacity {
			t.Fatalf("queue size %d exceeded capacity %d", n, capacity)
		}
	}
	wg.Wait()
	if maxSeen.Load() > capacity {
		t.Fatalf("observed size %d above capacity %d", maxSeen.Load(), capacity)
	}
}

func TestUnboundedQueueAcceptsEverything(t *testing.T) {
	ctx := context.Background()
	q := queue.New[int](0)
	for i := 0; i < 500; i++ {
		if err := q.Put(ctx, i); err != nil {
			t.Fatalf("Put returned error: %v", err)
		}
	}
	if q.Len() != 500 || q.Capacity() != 0 {
		t.Fatalf("unexpected len=%d capacity=%d", q.Len(), q.Capacity())
	}
}

func TestRemoveWhereKeepsOrderAndReleasesProducers(t *testing.T) {
	ctx := context.Background()
	q := queue.New[int](4)
	for _, v := range []int{1, 2, 3, 4} {
		if err := q.Put(ctx, v); err != nil {
			t.Fatalf("Put returned error: %v", err)
		}
	}

	delivered := make(chan error, 1)
	go func() { delivered <- q.Put(ctx, 5) }()
	time.Sleep(10 * time.Millisecond)

	removed := q.RemoveWhere(func(v int) bool { return v%2 == 0 })
	if removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}
	select {
	case err := <-delivered:
		if err != nil {
			t.Fatalf("released Put returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RemoveWhere did not release blocked producer")
	}
	if diff := cmp.Diff([]int{1, 3, 5}, q.Snapshot()); diff != "" {
		t.Fatalf("unexpected contents (-want +got):\n%s", diff)
	}
	if q.RemoveWhere(func(int) bool { return false }) != 0 {
		t.Fatal("expected no removals")
	}
}
