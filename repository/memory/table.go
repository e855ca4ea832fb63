package memory

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type row[T any] struct {
	doc T
	seq int64
}

// table keeps documents by id and remembers insertion order for stable sorting.
type table[T any] struct {
	rows map[primitive.ObjectID]row[T]
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]row[T])}
}

func (t *table[T]) put(id primitive.ObjectID, doc T) {
	if r, ok := t.rows[id]; ok {
		r.doc = copyDoc(doc)
		t.rows[id] = r
		return
	}
	t.seq++
	t.rows[id] = row[T]{doc: copyDoc(doc), seq: t.seq}
}

func (t *table[T]) get(id primitive.ObjectID) (T, bool) {
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return copyDoc(r.doc), true
}

func (t *table[T]) del(id primitive.ObjectID) {
	delete(t.rows, id)
}

// list returns matching documents newest first by at(), then by insertion order.
func (t *table[T]) list(keep func(T) bool, at func(T) time.Time) []T {
	rows := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r.doc) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		ti, tj := at(rows[i].doc), at(rows[j].doc)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, copyDoc(r.doc))
	}
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[primitive.ObjectID]row[T], len(t.rows)), seq: t.seq}
	for id, r := range t.rows {
		c.rows[id] = row[T]{doc: copyDoc(r.doc), seq: r.seq}
	}
	return c
}

// copyDoc deep-copies through BSON, which also gives stored values the same
// millisecond time precision MongoDB would.
func copyDoc[T any](doc T) T {
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic("memory: marshal document: " + err.Error())
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic("memory: unmarshal document: " + err.Error())
	}
	return out
}

// applySet merges top-level fields into doc the way a $set would.
func applySet[T any](doc T, set map[string]interface{}) (T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return doc, err
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return doc, err
	}
	for k, v := range set {
		m[k] = v
	}
	if raw, err = bson.Marshal(m); err != nil {
		return doc, err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return doc, err
	}
	return out, nil
}
