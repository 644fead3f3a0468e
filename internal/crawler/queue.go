package crawler

import "sync"

// Frontier is a deduplicating FIFO work queue of URLs to crawl.
//
// A URL is "pending" from the moment Put accepts it until a worker removes it
// with Get. Put is a no-op for a URL that is already pending, so the same URL
// can never sit in the queue twice. Membership tracking lives inside the
// queue itself rather than in a separate seen-set: a URL that has been
// drained is no longer a member, and re-enqueueing it is the caller's
// visited-set's job to prevent.
//
// Every successful Get must be paired with exactly one Done call once the
// item has been fully processed. Join blocks until there is neither pending
// nor in-flight work, which is the drain signal the orchestrator uses to
// stop the worker pool.
type Frontier struct {
	mu   sync.Mutex
	cond *sync.Cond

	// items is the FIFO order of pending URLs.
	items []string

	// pending mirrors items for O(1) membership checks.
	pending map[string]struct{}

	// inflight counts URLs handed out by Get but not yet acknowledged.
	inflight int

	// closed stops Get from blocking and makes Put a no-op.
	closed bool
}

// NewFrontier creates an empty frontier queue.
func NewFrontier() *Frontier {
	f := &Frontier{
		pending: make(map[string]struct{}),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Put adds a URL to the queue. It reports whether the URL was accepted:
// false means it is already pending or the queue has been closed.
// The membership check and the enqueue happen under one critical section,
// so two workers racing to add the same URL enqueue it exactly once.
func (f *Frontier) Put(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}
	if _, ok := f.pending[rawURL]; ok {
		return false
	}

	f.pending[rawURL] = struct{}{}
	f.items = append(f.items, rawURL)
	f.cond.Broadcast()
	return true
}

// Contains reports whether a URL is currently pending.
func (f *Frontier) Contains(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pending[rawURL]
	return ok
}

// Get blocks until an item is available or the queue is closed.
// It removes the returned URL from the pending set atomically with delivery
// and counts it as in-flight until Done is called.
// The second return value is false once the queue is closed.
func (f *Frontier) Get() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.items) == 0 && !f.closed {
		f.cond.Wait()
	}
	if f.closed {
		return "", false
	}

	item := f.items[0]
	f.items = f.items[1:]
	delete(f.pending, item)
	f.inflight++
	return item, true
}

// Done acknowledges completion of one item previously returned by Get.
// It must be called exactly once per successful Get, whether the item was
// processed successfully or not.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inflight == 0 {
		panic("crawler: Frontier.Done called more times than Get")
	}
	f.inflight--
	if f.inflight == 0 && len(f.items) == 0 {
		f.cond.Broadcast()
	}
}

// Join blocks until the queue is drained: no pending items and no in-flight
// work. It also returns if the queue is closed.
func (f *Frontier) Join() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for (len(f.items) > 0 || f.inflight > 0) && !f.closed {
		f.cond.Wait()
	}
}

// Close wakes all blocked callers and makes further Put calls no-ops.
// Workers blocked in Get return with ok=false, which is their shutdown
// signal once the orchestrator declares the crawl drained or cancelled.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.cond.Broadcast()
}

// Len returns the number of pending items.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
