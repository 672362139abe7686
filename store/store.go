package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"crossconnect/events"
	natsClient "crossconnect/nats"
)

// Collections managed by the synchronization core.
const (
	CollectionPosts       = "posts"
	CollectionUsers       = "users"
	CollectionLikes       = "likes"
	CollectionComments    = "comments"
	CollectionConnections = "connections"
	CollectionCredentials = "credentials"
)

// Fields is the schemaless field set of a document.
type Fields map[string]any

// Sink receives the full current result set of a subscription. It is invoked
// once with the initial snapshot and then once per observed change; pushes
// that arrive faster than they can be delivered may be coalesced.
type Sink func([]Document)

// Subscription is the handle for a live query. Cancel is the only release
// discipline the core requires.
type Subscription interface {
	// Cancel releases the subscription. After Cancel returns the sink is
	// never invoked again. Cancel must not be called from inside the sink.
	Cancel()
}

// Store is the remote document store contract: key-addressed schemaless
// documents, equality-filtered queries with single-field ascending ordering,
// and change subscriptions that deliver full matching-set snapshots.
type Store interface {
	// Create inserts a document under a store-assigned id and returns it.
	Create(ctx context.Context, collection string, fields Fields) (string, error)
	// Update merges the partial field set into an existing document; fields
	// not named are left untouched.
	Update(ctx context.Context, collection, id string, fields Fields) error
	// Upsert creates or fully replaces a document at a known id. Used for
	// composite-keyed relation documents so toggling is idempotent.
	Upsert(ctx context.Context, collection, id string, fields Fields) error
	// Delete removes a document. Deleting an absent document is a no-op so
	// that redundant relation toggles converge.
	Delete(ctx context.Context, collection, id string) error
	// Get runs the query once and returns the current matching set.
	Get(ctx context.Context, q Query) ([]Document, error)
	// Subscribe opens a live query and pushes full snapshots to the sink.
	Subscribe(ctx context.Context, q Query, sink Sink) (Subscription, error)
}

// DocumentStore keeps documents in Postgres and fans change notifications
// out over NATS. Per-document atomicity comes from the single-row
// insert/update/delete statements; there are no cross-document transactions.
type DocumentStore struct {
	db   *sqlx.DB
	nats *natsClient.Client
}

func New(db *sqlx.DB, nc *natsClient.Client) *DocumentStore {
	return &DocumentStore{db: db, nats: nc}
}

// EnsureSchema creates the documents table and its indexes if missing.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (collection, id)
		);
		CREATE INDEX IF NOT EXISTS documents_collection_idx
			ON documents (collection, created_at);
		CREATE INDEX IF NOT EXISTS documents_data_idx
			ON documents USING GIN (data);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure document schema: %w", err)
	}

	return nil
}

func (s *DocumentStore) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`

	id := uuid.New().String()
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, collection, id, data, time.Now()); err != nil {
		return "", fmt.Errorf("failed to create document in %s: %w", collection, err)
	}

	s.publishChange(collection, id, events.OpCreate)
	return id, nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields Fields) error {
	query := `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = $4
		WHERE collection = $1 AND id = $2
	`

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, collection, id, data, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update document %s in %s: %w", id, collection, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("document %s not found in %s", id, collection)
	}

	s.publishChange(collection, id, events.OpUpdate)
	return nil
}

func (s *DocumentStore) Upsert(ctx context.Context, collection, id string, fields Fields) error {
	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, collection, id, data, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert document %s in %s: %w", id, collection, err)
	}

	s.publishChange(collection, id, events.OpUpsert)
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, collection, id); err != nil {
		return fmt.Errorf("failed to delete document %s from %s: %w", id, collection, err)
	}

	s.publishChange(collection, id, events.OpDelete)
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, q Query) ([]Document, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	query, args := q.sql()

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		var fields Fields
		if err := json.Unmarshal(row.Data, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", row.ID, err)
		}
		docs = append(docs, Document{ID: row.ID, Fields: fields})
	}

	return docs, nil
}

type documentRow struct {
	ID   string `db:"id"`
	Data []byte `db:"data"`
}

// publishChange is best-effort: a lost event means subscribers miss one
// refresh cycle, never that state is lost.
func (s *DocumentStore) publishChange(collection, id, op string) {
	event := events.DocumentChangedEvent{
		Collection: collection,
		DocumentID: id,
		Op:         op,
		ChangedAt:  time.Now(),
	}

	if err := s.nats.Publish(events.Subject(collection), event); err != nil {
		log.Printf("Failed to publish %s change for %s: %v", collection, id, err)
	}
}

var _ Store = (*DocumentStore)(nil)
