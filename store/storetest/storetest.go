// Package storetest provides an in-memory document store with the same
// query, merge and push semantics as the Postgres-backed one. Change pushes
// are delivered synchronously on the mutating goroutine, which makes
// subscription-driven tests deterministic.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"crossconnect/store"
)

type subscription struct {
	mem    *Store
	query  store.Query
	sink   store.Sink
	mu     sync.Mutex
	closed bool
}

func (s *subscription) deliver(docs []store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.sink(docs)
}

func (s *subscription) Cancel() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.mem.drop(s)
}

// Store is an in-memory store.Store.
type Store struct {
	mu   sync.Mutex
	docs map[string]map[string]store.Fields
	subs []*subscription
}

func New() *Store {
	return &Store{docs: make(map[string]map[string]store.Fields)}
}

func (m *Store) Create(ctx context.Context, collection string, fields store.Fields) (string, error) {
	id := uuid.New().String()
	m.put(collection, id, fields, false)
	m.push(collection)
	return id, nil
}

func (m *Store) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	m.mu.Lock()
	existing, ok := m.docs[collection][id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("document %s not found in %s", id, collection)
	}
	for k, v := range fields {
		existing[k] = v
	}
	m.mu.Unlock()

	m.push(collection)
	return nil
}

func (m *Store) Upsert(ctx context.Context, collection, id string, fields store.Fields) error {
	m.put(collection, id, fields, true)
	m.push(collection)
	return nil
}

func (m *Store) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	delete(m.docs[collection], id)
	m.mu.Unlock()

	m.push(collection)
	return nil
}

func (m *Store) Get(ctx context.Context, q store.Query) ([]store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(q), nil
}

func (m *Store) Subscribe(ctx context.Context, q store.Query, sink store.Sink) (store.Subscription, error) {
	sub := &subscription{mem: m, query: q, sink: sink}

	m.mu.Lock()
	m.subs = append(m.subs, sub)
	docs := m.snapshot(q)
	m.mu.Unlock()

	sub.deliver(docs)
	return sub, nil
}

func (m *Store) put(collection, id string, fields store.Fields, replace bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]store.Fields)
	}
	copied := make(store.Fields, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	m.docs[collection][id] = copied
}

// push re-runs every matching live query and delivers fresh full snapshots.
func (m *Store) push(collection string) {
	m.mu.Lock()
	type delivery struct {
		sub  *subscription
		docs []store.Document
	}
	var deliveries []delivery
	for _, sub := range m.subs {
		if sub.query.Collection == collection {
			deliveries = append(deliveries, delivery{sub, m.snapshot(sub.query)})
		}
	}
	m.mu.Unlock()

	for _, d := range deliveries {
		d.sub.deliver(d.docs)
	}
}

func (m *Store) drop(sub *subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s == sub {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return
		}
	}
}

// snapshot must be called with the lock held.
func (m *Store) snapshot(q store.Query) []store.Document {
	docs := make([]store.Document, 0)
	for id, fields := range m.docs[q.Collection] {
		if q.Where != nil && fmt.Sprint(fields[q.Where.Field]) != fmt.Sprint(q.Where.Value) {
			continue
		}
		copied := make(store.Fields, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		docs = append(docs, store.Document{ID: id, Fields: copied})
	}

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			return less(docs[i].Fields[q.OrderBy], docs[j].Fields[q.OrderBy])
		})
	} else {
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].ID < docs[j].ID
		})
	}

	return docs
}

// less mirrors jsonb value ordering closely enough for tests: numbers sort
// numerically, everything else by text form.
func less(a, b any) bool {
	fa, aok := asFloat(a)
	fb, bok := asFloat(b)
	if aok && bok {
		return fa < fb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var _ store.Store = (*Store)(nil)
