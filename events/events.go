package events

import "time"

const subjectPrefix = "store.changes."

// Mutation kinds carried by DocumentChangedEvent.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DocumentChangedEvent is published on a collection's subject after every
// successful mutation. Subscribers re-run their query on receipt; the event
// itself carries no document data.
type DocumentChangedEvent struct {
	Collection string    `json:"collection"`
	DocumentID string    `json:"document_id"`
	Op         string    `json:"op"`
	ChangedAt  time.Time `json:"changed_at"`
}

// Subject returns the NATS subject carrying change events for a collection.
func Subject(collection string) string {
	return subjectPrefix + collection
}
