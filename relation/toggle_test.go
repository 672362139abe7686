package relation

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"

	"crossconnect/store"
)

type call struct {
	op         string
	collection string
	id         string
	fields     store.Fields
}

type recordingMutator struct {
	calls []call
}

func (m *recordingMutator) Upsert(ctx context.Context, collection, id string, fields store.Fields, successMsg string) error {
	m.calls = append(m.calls, call{op: "upsert", collection: collection, id: id, fields: fields})
	return nil
}

func (m *recordingMutator) Remove(ctx context.Context, collection, id string, successMsg string) error {
	m.calls = append(m.calls, call{op: "remove", collection: collection, id: id})
	return nil
}

func TestToggleAbsentUpserts(t *testing.T) {
	rec := &recordingMutator{}
	toggler := NewToggler(rec, "likes", "userId", "postId", "")

	err := toggler.Toggle(context.Background(), "u1", "p1", false)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(rec.calls), 1)
	assert.Equal(t, rec.calls[0].op, "upsert")
	assert.Equal(t, rec.calls[0].id, "u1_p1")
	assert.Equal(t, rec.calls[0].fields["userId"], "u1")
	assert.Equal(t, rec.calls[0].fields["postId"], "p1")
}

func TestTogglePresentRemoves(t *testing.T) {
	rec := &recordingMutator{}
	toggler := NewToggler(rec, "likes", "userId", "postId", "")

	err := toggler.Toggle(context.Background(), "u1", "p1", true)
	assert.Equal(t, err, nil)
	assert.Equal(t, rec.calls[0].op, "remove")
	assert.Equal(t, rec.calls[0].id, "u1_p1")
}

func TestToggleCycleKeepsIdentity(t *testing.T) {
	rec := &recordingMutator{}
	toggler := NewToggler(rec, "connections", "userId", "targetId", "")
	ctx := context.Background()

	toggler.Toggle(ctx, "u1", "t1", false)
	toggler.Toggle(ctx, "u1", "t1", true)
	toggler.Toggle(ctx, "u1", "t1", false)

	// the same document id is used across the whole cycle
	assert.Equal(t, rec.calls[0].id, rec.calls[1].id)
	assert.Equal(t, rec.calls[1].id, rec.calls[2].id)
}
