// Package memory is an in-process store.Store used by unit tests and local
// development. A single mutex makes every operation atomic, which mirrors the
// remote store's per-operation guarantees (increments never lose updates).
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	internal_errors "github.com/otoboard/otoboard/internal/errors"
	"github.com/otoboard/otoboard/internal/store"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]any // document path -> fields

	// now is injectable so tests get deterministic server timestamps.
	now func() time.Time
}

func New() *Store {
	return &Store{
		docs: make(map[string]map[string]any),
		now:  time.Now,
	}
}

// WithClock replaces the server-timestamp source. Test helper.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func notFound(path string) error {
	return fmt.Errorf("document %q: %w", path, internal_errors.NotFound)
}

func docID(path string) string {
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}

func (s *Store) Get(ctx context.Context, path string) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.docs[path]
	if !ok {
		return store.Document{}, notFound(path)
	}
	return store.Document{ID: docID(path), Path: path, Fields: cloneFields(fields)}, nil
}

func (s *Store) Query(ctx context.Context, collection string, q store.Query) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := collection + "/"
	var result []store.Document
	for path, fields := range s.docs {
		if !strings.HasPrefix(path, prefix) || strings.Contains(path[len(prefix):], "/") {
			continue
		}
		if !matches(fields, q.Filters) {
			continue
		}
		result = append(result, store.Document{ID: docID(path), Path: path, Fields: cloneFields(fields)})
	}

	if q.OrderBy != "" {
		sort.SliceStable(result, func(i, j int) bool {
			less := compareFields(result[i].Fields[q.OrderBy], result[j].Fields[q.OrderBy])
			if q.Ascending {
				return less < 0
			}
			return less > 0
		})
	}
	return result, nil
}

func (s *Store) Add(ctx context.Context, collection string, fields map[string]any) (store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	path := collection + "/" + id
	committed := s.resolveTimestamps(fields)
	s.docs[path] = committed
	return store.Document{ID: id, Path: path, Fields: cloneFields(committed)}, nil
}

func (s *Store) Set(ctx context.Context, path string, fields map[string]any, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := s.resolveTimestamps(fields)
	existing, ok := s.docs[path]
	if !merge || !ok {
		s.docs[path] = resolved
		return nil
	}
	for k, v := range resolved {
		existing[k] = v
	}
	return nil
}

func (s *Store) Update(ctx context.Context, path string, updates []store.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.docs[path]
	if !ok {
		return notFound(path)
	}
	for _, u := range updates {
		switch u.Op {
		case store.Set:
			fields[u.Field] = u.Value
		case store.Increment:
			current, _ := fields[u.Field].(int64)
			fields[u.Field] = current + u.Value.(int64)
		case store.ServerTimestamp:
			fields[u.Field] = s.now()
		}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[path]; !ok {
		return notFound(path)
	}
	delete(s.docs, path)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Len reports the number of stored documents. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) resolveTimestamps(fields map[string]any) map[string]any {
	resolved := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := v.(store.ServerTime); ok {
			resolved[k] = s.now()
			continue
		}
		resolved[k] = v
	}
	return resolved
}

func matches(fields map[string]any, filters []store.Filter) bool {
	for _, f := range filters {
		if fields[f.Field] != f.Value {
			return false
		}
	}
	return true
}

func cloneFields(fields map[string]any) map[string]any {
	clone := make(map[string]any, len(fields))
	for k, v := range fields {
		clone[k] = v
	}
	return clone
}

// compareFields orders the value types documents actually carry. Unknown or
// mismatched types compare equal, which keeps the sort stable.
func compareFields(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return 0
}
