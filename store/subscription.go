package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/nats-io/nats.go"

	"crossconnect/events"
)

// Subscribe opens a standing live query. The change feed is attached before
// the initial snapshot is taken so no mutation can fall between them; a
// change landing in that window only causes a duplicate push, which the
// at-least-once contract allows.
func (s *DocumentStore) Subscribe(ctx context.Context, q Query, sink Sink) (Subscription, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	sub := &liveQuery{sink: sink}

	natsSub, err := s.nats.Subscribe(events.Subject(q.Collection), func(msg *nats.Msg) {
		docs, err := s.Get(ctx, q)
		if err != nil {
			// A failed refresh is "no update this cycle"; the subscription
			// stays alive and the next change triggers another attempt.
			log.Printf("Failed to refresh %s snapshot: %v", q.Collection, err)
			return
		}
		sub.deliver(docs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open live query on %s: %w", q.Collection, err)
	}
	sub.natsSub = natsSub

	docs, err := s.Get(ctx, q)
	if err != nil {
		natsSub.Unsubscribe()
		return nil, err
	}
	sub.deliver(docs)

	return sub, nil
}

// liveQuery gates snapshot delivery behind a mutex so that once Cancel
// returns, the sink can never be invoked again, even if a refresh is already
// in flight on the NATS dispatch goroutine.
type liveQuery struct {
	mu      sync.Mutex
	closed  bool
	sink    Sink
	natsSub *nats.Subscription
}

func (l *liveQuery) deliver(docs []Document) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.sink(docs)
}

func (l *liveQuery) Cancel() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	if l.natsSub != nil {
		if err := l.natsSub.Unsubscribe(); err != nil {
			log.Printf("Failed to release live query: %v", err)
		}
	}
}
