package relation

import "strings"

const delimiter = "_"

// Key derives the identity of a relation document from the two entity ids.
// Using the pair as the document id enforces at-most-one relation per pair
// at the store level, with no query-time deduplication.
type Key struct {
	SubjectID string
	ObjectID  string
}

func NewKey(subjectID, objectID string) Key {
	return Key{SubjectID: subjectID, ObjectID: objectID}
}

// String renders the document id. The construction is deterministic and
// order-sensitive: NewKey(a, b) and NewKey(b, a) render differently unless
// a == b. Delimiters inside the ids are escaped so distinct pairs can never
// collide on the rendered form.
func (k Key) String() string {
	return escape(k.SubjectID) + delimiter + escape(k.ObjectID)
}

func escape(id string) string {
	id = strings.ReplaceAll(id, `\`, `\\`)
	return strings.ReplaceAll(id, delimiter, `\`+delimiter)
}
