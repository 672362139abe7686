package store

import (
	"errors"
	"fmt"
)

// Filter is an equality predicate on a single document field.
type Filter struct {
	Field string
	Value any
}

// Query scopes a live view: one collection, an optional equality filter and
// an optional single-field ascending ordering. With no ordering, documents
// come back in creation order.
type Query struct {
	Collection string
	Where      *Filter
	OrderBy    string
}

func (q Query) validate() error {
	if q.Collection == "" {
		return errors.New("query collection is required")
	}
	if q.Where != nil && q.Where.Field == "" {
		return errors.New("query filter field is required")
	}
	return nil
}

// sql renders the query against the documents table. Filtering compares the
// field's text form; ordering uses jsonb value ordering so numeric fields
// such as timeStamp sort numerically, not lexically.
func (q Query) sql() (string, []any) {
	query := `SELECT id, data FROM documents WHERE collection = $1`
	args := []any{q.Collection}

	if q.Where != nil {
		query += fmt.Sprintf(` AND data->>$%d = $%d`, len(args)+1, len(args)+2)
		args = append(args, q.Where.Field, fmt.Sprint(q.Where.Value))
	}

	if q.OrderBy != "" {
		query += fmt.Sprintf(` ORDER BY data->($%d::text) ASC`, len(args)+1)
		args = append(args, q.OrderBy)
	} else {
		query += ` ORDER BY created_at ASC`
	}

	return query, args
}
