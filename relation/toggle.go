package relation

import (
	"context"

	"crossconnect/store"
)

// Mutator is the slice of the mutation dispatcher a toggle needs.
type Mutator interface {
	Upsert(ctx context.Context, collection, id string, fields store.Fields, successMsg string) error
	Remove(ctx context.Context, collection, id string, successMsg string) error
}

// Toggler flips a relation between Absent and Present, where presence is
// document existence under the composite key. There is no read before the
// write: the caller supplies the presence it last observed from its live
// query. A caller racing a stale snapshot issues a redundant remove or
// upsert; both converge on the intended state, though the displayed state
// may flicker while two toggles race. That trade is accepted.
type Toggler struct {
	dispatcher   Mutator
	collection   string
	subjectField string
	objectField  string
	addMessage   string
}

func NewToggler(d Mutator, collection, subjectField, objectField, addMessage string) *Toggler {
	return &Toggler{
		dispatcher:   d,
		collection:   collection,
		subjectField: subjectField,
		objectField:  objectField,
		addMessage:   addMessage,
	}
}

// Toggle removes the relation document when it is currently present,
// otherwise upserts it. Upsert over a present document and remove of an
// absent one both succeed, so repeated toggles from the same observed state
// are idempotent.
func (t *Toggler) Toggle(ctx context.Context, subjectID, objectID string, currentlyPresent bool) error {
	key := NewKey(subjectID, objectID).String()

	if currentlyPresent {
		return t.dispatcher.Remove(ctx, t.collection, key, "")
	}

	fields := store.Fields{
		t.subjectField: subjectID,
		t.objectField:  objectID,
	}
	return t.dispatcher.Upsert(ctx, t.collection, key, fields, t.addMessage)
}

// Add upserts the relation unconditionally.
func (t *Toggler) Add(ctx context.Context, subjectID, objectID string) error {
	return t.Toggle(ctx, subjectID, objectID, false)
}
