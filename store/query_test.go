package store

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestQuerySQLCollectionOnly(t *testing.T) {
	q := Query{Collection: "users"}
	sql, args := q.sql()

	assert.Equal(t, sql, `SELECT id, data FROM documents WHERE collection = $1 ORDER BY created_at ASC`)
	assert.Equal(t, args, []any{"users"})
}

func TestQuerySQLWithFilter(t *testing.T) {
	q := Query{Collection: "likes", Where: &Filter{Field: "postId", Value: "p1"}}
	sql, args := q.sql()

	assert.Equal(t, sql, `SELECT id, data FROM documents WHERE collection = $1 AND data->>$2 = $3 ORDER BY created_at ASC`)
	assert.Equal(t, args, []any{"likes", "postId", "p1"})
}

func TestQuerySQLWithFilterAndOrdering(t *testing.T) {
	q := Query{
		Collection: "posts",
		Where:      &Filter{Field: "userID", Value: "u1"},
		OrderBy:    "timeStamp",
	}
	sql, args := q.sql()

	assert.Equal(t, sql, `SELECT id, data FROM documents WHERE collection = $1 AND data->>$2 = $3 ORDER BY data->($4::text) ASC`)
	assert.Equal(t, args, []any{"posts", "userID", "u1", "timeStamp"})
}

func TestQueryValidate(t *testing.T) {
	assert.NotEqual(t, Query{}.validate(), nil)
	assert.NotEqual(t, Query{Collection: "posts", Where: &Filter{}}.validate(), nil)
	assert.Equal(t, Query{Collection: "posts"}.validate(), nil)
}
