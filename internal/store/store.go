// Package store defines the abstract remote document database the forum core
// runs against: path-addressed collections and documents, equality-filtered
// and ordered queries, atomic field increments and server-assigned timestamps.
package store

import "context"

// Document is one stored document. Fields hold string, bool, int64,
// time.Time and []string values.
type Document struct {
	ID     string
	Path   string
	Fields map[string]any
}

// ServerTime is a marker value: a field written with it gets the store's
// commit time instead of anything from the caller's clock.
type ServerTime struct{}

type Filter struct {
	Field string
	Value any
}

type Query struct {
	Filters   []Filter
	OrderBy   string // field name; empty means unspecified order
	Ascending bool
}

func Where(field string, value any) Query {
	return Query{Filters: []Filter{{Field: field, Value: value}}}
}

func OrderedAsc(field string) Query {
	return Query{OrderBy: field, Ascending: true}
}

type UpdateOp int

const (
	Set UpdateOp = iota
	Increment
	ServerTimestamp
)

// Update is a single-field mutation applied to an existing document.
type Update struct {
	Field string
	Op    UpdateOp
	Value any // Set: new value; Increment: int64 delta; ServerTimestamp: ignored
}

func SetField(field string, value any) Update {
	return Update{Field: field, Op: Set, Value: value}
}

func IncrementField(field string, delta int64) Update {
	return Update{Field: field, Op: Increment, Value: delta}
}

func ServerTimestampField(field string) Update {
	return Update{Field: field, Op: ServerTimestamp}
}

// Store is the remote document database.
//
// Get and Update return errors.NotFound (wrapped in ErrorWithStatusCode by
// adapters) when the document is absent. Add assigns the document id and
// returns the committed document with server timestamps resolved, so callers
// can splice it into local state without a re-fetch. Set with merge=true is a
// partial update that never clobbers sibling fields.
type Store interface {
	Get(ctx context.Context, path string) (Document, error)
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Add(ctx context.Context, collection string, fields map[string]any) (Document, error)
	Set(ctx context.Context, path string, fields map[string]any, merge bool) error
	Update(ctx context.Context, path string, updates []Update) error
	Delete(ctx context.Context, path string) error
	Ping(ctx context.Context) error
}
