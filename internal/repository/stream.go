package repository

import (
	"context"
	"sync"

	"cointracker/internal/result"
)

const subscriberBuffer = 16

// watcher fans successful snapshot updates out to subscribers. Slow
// subscribers are conflated: when a buffer is full the oldest pending
// emission is dropped in favour of the newest, which is the right trade for
// snapshot streams where only the latest state matters.
type watcher[T any] struct {
	mu   sync.Mutex
	subs map[int]chan result.Result[T]
	next int
}

func newWatcher[T any]() *watcher[T] {
	return &watcher[T]{subs: make(map[int]chan result.Result[T])}
}

// subscribe registers a channel that is closed when ctx is cancelled.
func (w *watcher[T]) subscribe(ctx context.Context) chan result.Result[T] {
	ch := make(chan result.Result[T], subscriberBuffer)

	w.mu.Lock()
	id := w.next
	w.next++
	w.subs[id] = ch
	w.mu.Unlock()

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		delete(w.subs, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// send delivers r to a single subscriber if it is still registered. Used
// for the initial snapshot emission; holding the lock keeps the send from
// racing the close on cancellation.
func (w *watcher[T]) send(ch chan result.Result[T], r result.Result[T]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sub := range w.subs {
		if sub == ch {
			deliver(ch, r)
			return
		}
	}
}

// publish delivers r to all current subscribers.
func (w *watcher[T]) publish(r result.Result[T]) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		deliver(ch, r)
	}
}

func deliver[T any](ch chan result.Result[T], r result.Result[T]) {
	select {
	case ch <- r:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- r:
	default:
	}
}
