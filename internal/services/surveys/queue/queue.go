// Package queue is the bounded in-memory buffer between submission and the worker
package queue

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"surveyflow/internal/services/surveys/domain"
)

// DefaultCapacity is used when New gets a non positive capacity
const DefaultCapacity = 10_000

// Queue is a bounded FIFO of QueueItems backed by a buffered channel.
// Writers block while it is full; Close rejects new writes but leaves buffered items drainable
type Queue struct {
	ch       chan domain.QueueItem
	done     chan struct{}
	once     sync.Once
	depth    atomic.Int64
	capacity int
}

var _ domain.Queue = (*Queue)(nil)

// New creates a queue holding up to capacity items
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		ch:       make(chan domain.QueueItem, capacity),
		done:     make(chan struct{}),
		capacity: capacity,
	}
}

// Enqueue adds e with attempt 0, waiting for space
func (q *Queue) Enqueue(ctx context.Context, e domain.Event) error {
	return q.put(ctx, domain.QueueItem{Event: e})
}

// Requeue puts item back with its attempt counter incremented
func (q *Queue) Requeue(ctx context.Context, item domain.QueueItem) error {
	item.Attempt++
	return q.put(ctx, item)
}

func (q *Queue) put(ctx context.Context, item domain.QueueItem) error {
	select {
	case <-q.done:
		return domain.ErrQueueClosed
	default:
	}
	select {
	case q.ch <- item:
		q.depth.Add(1)
		return nil
	case <-q.done:
		return domain.ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain yields items as they arrive, suspending while the queue is empty.
// The sequence ends only when ctx is cancelled or the consumer stops
func (q *Queue) Drain(ctx context.Context) iter.Seq[domain.QueueItem] {
	return func(yield func(domain.QueueItem) bool) {
		for {
			// cancellation wins over buffered items
			if ctx.Err() != nil {
				return
			}
			select {
			case item := <-q.ch:
				q.depth.Add(-1)
				if !yield(item) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}
}

// Close stops accepting writes; safe to call more than once
func (q *Queue) Close() { q.once.Do(func() { close(q.done) }) }

// Closed reports whether Close was called
func (q *Queue) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// Depth is the number of buffered items
func (q *Queue) Depth() int { return int(q.depth.Load()) }

// Capacity is the maximum number of buffered items
func (q *Queue) Capacity() int { return q.capacity }
