package like

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"

	"crossconnect/dispatcher"
	"crossconnect/model"
	"crossconnect/store"
	"crossconnect/store/storetest"
)

func newService(t *testing.T) (*Service, *storetest.Store) {
	t.Helper()
	st := storetest.New()
	return NewService(st, dispatcher.New(st, nil)), st
}

func TestToggleCycle(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	var last Status
	sub, err := svc.WatchStatus(ctx, "u1", "p1", func(s Status) { last = s })
	assert.Equal(t, err, nil)
	defer sub.Cancel()

	assert.Equal(t, last, Status{Liked: false, Count: 0})

	// like
	assert.Equal(t, svc.Toggle(ctx, "u1", "p1", false), nil)
	assert.Equal(t, last, Status{Liked: true, Count: 1})

	// unlike
	assert.Equal(t, svc.Toggle(ctx, "u1", "p1", true), nil)
	assert.Equal(t, last, Status{Liked: false, Count: 0})

	// like again: same composite id, not a second document
	assert.Equal(t, svc.Toggle(ctx, "u1", "p1", false), nil)
	docs, _ := st.Get(ctx, store.Query{Collection: store.CollectionLikes})
	assert.Equal(t, len(docs), 1)
	assert.Equal(t, docs[0].ID, "u1_p1")
}

func TestToggleIsIdempotent(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	// redundant upserts from a stale snapshot converge on one document
	assert.Equal(t, svc.Toggle(ctx, "u1", "p1", false), nil)
	assert.Equal(t, svc.Toggle(ctx, "u1", "p1", false), nil)
	docs, _ := st.Get(ctx, store.Query{Collection: store.CollectionLikes})
	assert.Equal(t, len(docs), 1)

	// removing an absent document succeeds
	assert.Equal(t, svc.Toggle(ctx, "u2", "p9", true), nil)
}

func TestCountTracksMatchingDocuments(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	var last Status
	sub, err := svc.WatchStatus(ctx, "u1", "p1", func(s Status) { last = s })
	assert.Equal(t, err, nil)
	defer sub.Cancel()

	svc.Toggle(ctx, "u1", "p1", false)
	svc.Toggle(ctx, "u2", "p1", false)
	svc.Toggle(ctx, "u3", "p1", false)
	// a like on another post must not count
	svc.Toggle(ctx, "u1", "p2", false)

	assert.Equal(t, last, Status{Liked: true, Count: 3})

	svc.Toggle(ctx, "u1", "p1", true)
	assert.Equal(t, last, Status{Liked: false, Count: 2})
}

func TestStatusOf(t *testing.T) {
	likes := []models.Like{
		{ID: "u1_p1", UserID: "u1", PostID: "p1"},
		{ID: "u2_p1", UserID: "u2", PostID: "p1"},
	}

	assert.Equal(t, statusOf(likes, "u1"), Status{Liked: true, Count: 2})
	assert.Equal(t, statusOf(likes, "u9"), Status{Liked: false, Count: 2})
	assert.Equal(t, statusOf(nil, "u1"), Status{})
}
