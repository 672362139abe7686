package store

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLiveQueryDeliversUntilCancel(t *testing.T) {
	var snapshots [][]Document
	lq := &liveQuery{sink: func(docs []Document) {
		snapshots = append(snapshots, docs)
	}}

	lq.deliver([]Document{{ID: "a"}})
	lq.deliver([]Document{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, len(snapshots), 2)

	lq.Cancel()

	// a refresh already in flight when Cancel returned must be dropped
	lq.deliver([]Document{{ID: "c"}})
	assert.Equal(t, len(snapshots), 2)
}

func TestLiveQueryCancelIsIdempotent(t *testing.T) {
	lq := &liveQuery{sink: func([]Document) {}}
	lq.Cancel()
	lq.Cancel()
}
