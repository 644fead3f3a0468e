package crawler

import (
	"sync"
	"testing"
	"time"
)

// TestFrontierPut tests enqueue and membership semantics.
func TestFrontierPut(t *testing.T) {
	t.Parallel()

	t.Run("accepts new URL", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		if !f.Put("http://example.org/a") {
			t.Error("expected Put to accept a new URL")
		}
		if !f.Contains("http://example.org/a") {
			t.Error("expected URL to be pending after Put")
		}
		if f.Len() != 1 {
			t.Errorf("expected 1 pending item, got %d", f.Len())
		}
	})

	t.Run("rejects URL already pending", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Put("http://example.org/a")
		if f.Put("http://example.org/a") {
			t.Error("expected Put to reject a pending URL")
		}
		if f.Len() != 1 {
			t.Errorf("expected 1 pending item, got %d", f.Len())
		}
	})

	t.Run("accepts URL again after it drained", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Put("http://example.org/a")
		if _, ok := f.Get(); !ok {
			t.Fatal("expected Get to deliver")
		}
		f.Done()

		// Membership is pending-only; suppressing re-enqueue of completed
		// URLs is the visited set's job, not the queue's.
		if !f.Put("http://example.org/a") {
			t.Error("expected Put to accept a drained URL")
		}
	})

	t.Run("rejects after close", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Close()
		if f.Put("http://example.org/a") {
			t.Error("expected Put to reject after Close")
		}
	})
}

// TestFrontierGet tests delivery and shutdown behavior.
func TestFrontierGet(t *testing.T) {
	t.Parallel()

	t.Run("removes item from pending atomically with delivery", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Put("http://example.org/a")

		item, ok := f.Get()
		if !ok || item != "http://example.org/a" {
			t.Fatalf("expected delivery of the queued URL, got %q, %v", item, ok)
		}
		if f.Contains("http://example.org/a") {
			t.Error("expected URL to leave the pending set on Get")
		}
	})

	t.Run("delivers in FIFO order", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Put("http://example.org/a")
		f.Put("http://example.org/b")

		first, _ := f.Get()
		second, _ := f.Get()
		if first != "http://example.org/a" || second != "http://example.org/b" {
			t.Errorf("expected FIFO order, got %q then %q", first, second)
		}
	})

	t.Run("blocks until an item arrives", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		got := make(chan string)
		go func() {
			item, _ := f.Get()
			got <- item
		}()

		time.Sleep(20 * time.Millisecond)
		f.Put("http://example.org/a")

		select {
		case item := <-got:
			if item != "http://example.org/a" {
				t.Errorf("expected queued URL, got %q", item)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Get did not unblock after Put")
		}
	})

	t.Run("close unblocks waiting workers", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		done := make(chan bool)
		go func() {
			_, ok := f.Get()
			done <- ok
		}()

		time.Sleep(20 * time.Millisecond)
		f.Close()

		select {
		case ok := <-done:
			if ok {
				t.Error("expected ok=false from Get after Close")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Get did not unblock after Close")
		}
	})
}

// TestFrontierJoin tests drain detection.
func TestFrontierJoin(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately when empty", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		done := make(chan struct{})
		go func() {
			f.Join()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Join did not return on an empty queue")
		}
	})

	t.Run("waits for in-flight items", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier()
		f.Put("http://example.org/a")
		if _, ok := f.Get(); !ok {
			t.Fatal("expected Get to deliver")
		}

		joined := make(chan struct{})
		go func() {
			f.Join()
			close(joined)
		}()

		// The queue is empty but the item is still in flight.
		select {
		case <-joined:
			t.Fatal("Join returned before Done")
		case <-time.After(50 * time.Millisecond):
		}

		f.Done()
		select {
		case <-joined:
		case <-time.After(2 * time.Second):
			t.Fatal("Join did not return after the last Done")
		}
	})
}

// TestFrontierConcurrency checks the at-most-once delivery invariant under
// concurrent producers and consumers.
func TestFrontierConcurrency(t *testing.T) {
	t.Parallel()

	f := NewFrontier()

	const producers = 8
	urls := []string{
		"http://example.org/a",
		"http://example.org/b",
		"http://example.org/c",
		"http://example.org/d",
	}

	// All producers race to enqueue the same URLs.
	var produce sync.WaitGroup
	for i := 0; i < producers; i++ {
		produce.Add(1)
		go func() {
			defer produce.Done()
			for _, u := range urls {
				f.Put(u)
			}
		}()
	}

	// Consumers start only after the producers finish; a URL drained
	// mid-race could otherwise be legitimately re-enqueued and delivered
	// a second time.
	produce.Wait()

	var mu sync.Mutex
	delivered := make(map[string]int)

	var consume sync.WaitGroup
	for i := 0; i < 4; i++ {
		consume.Add(1)
		go func() {
			defer consume.Done()
			for {
				item, ok := f.Get()
				if !ok {
					return
				}
				mu.Lock()
				delivered[item]++
				mu.Unlock()
				f.Done()
			}
		}()
	}

	f.Join()
	f.Close()
	consume.Wait()

	for _, u := range urls {
		if delivered[u] != 1 {
			t.Errorf("expected %s delivered exactly once, got %d", u, delivered[u])
		}
	}
}
