package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	internal_errors "github.com/otoboard/otoboard/internal/errors"
	"github.com/otoboard/otoboard/internal/store"
)

// Timestamp-valued fields written by the forum core. The adapter normalizes
// these back from their jsonb string form on read.
var timestampFields = map[string]bool{
	"createdAt":    true,
	"lastActivity": true,
}

func notFound(path string) error {
	return fmt.Errorf("document %q: %w", path, internal_errors.NotFound)
}

func (s *Storage) Get(ctx context.Context, path string) (store.Document, error) {
	var raw []byte
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc_id, fields FROM documents WHERE path = $1",
		path,
	).Scan(&id, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Document{}, notFound(path)
		}
		return store.Document{}, fmt.Errorf("failed to fetch document: %w", err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return store.Document{}, err
	}
	return store.Document{ID: id, Path: path, Fields: fields}, nil
}

func (s *Storage) Query(ctx context.Context, collection string, q store.Query) ([]store.Document, error) {
	query := "SELECT path, doc_id, fields FROM documents WHERE collection = $1"
	args := []any{collection}

	if len(q.Filters) > 0 {
		contains := make(map[string]any, len(q.Filters))
		for _, f := range q.Filters {
			contains[f.Field] = f.Value
		}
		encoded, err := json.Marshal(contains)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filters: %w", err)
		}
		query += fmt.Sprintf(" AND fields @> $%d::jsonb", len(args)+1)
		args = append(args, string(encoded))
	}

	if q.OrderBy != "" {
		// Ordering compares the jsonb text form; RFC 3339 timestamps sort
		// chronologically, which is the only ordering the forum core uses.
		direction := "DESC"
		if q.Ascending {
			direction = "ASC"
		}
		query += fmt.Sprintf(" ORDER BY fields->>$%d %s", len(args)+1, direction)
		args = append(args, q.OrderBy)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		var path, id string
		var raw []byte
		if err := rows.Scan(&path, &id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{ID: id, Path: path, Fields: fields})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return docs, nil
}

func (s *Storage) Add(ctx context.Context, collection string, fields map[string]any) (store.Document, error) {
	id := uuid.NewString()
	path := collection + "/" + id

	expr, args, err := fieldsExpr(fields, 4)
	if err != nil {
		return store.Document{}, err
	}
	args = append([]any{path, collection, id}, args...)

	var raw []byte
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(`
        INSERT INTO documents (path, collection, doc_id, fields)
        VALUES ($1, $2, $3, %s)
        RETURNING fields
    `, expr), args...).Scan(&raw)
	if err != nil {
		return store.Document{}, fmt.Errorf("failed to insert document: %w", err)
	}

	committed, err := decodeFields(raw)
	if err != nil {
		return store.Document{}, err
	}
	return store.Document{ID: id, Path: path, Fields: committed}, nil
}

func (s *Storage) Set(ctx context.Context, path string, fields map[string]any, merge bool) error {
	collection, id, err := splitPath(path)
	if err != nil {
		return err
	}

	expr, args, err := fieldsExpr(fields, 4)
	if err != nil {
		return err
	}
	args = append([]any{path, collection, id}, args...)

	conflict := "fields = EXCLUDED.fields"
	if merge {
		conflict = "fields = documents.fields || EXCLUDED.fields"
	}
	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
        INSERT INTO documents (path, collection, doc_id, fields)
        VALUES ($1, $2, $3, %s)
        ON CONFLICT (path) DO UPDATE SET %s
    `, expr, conflict), args...)
	if err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

func (s *Storage) Update(ctx context.Context, path string, updates []store.Update) error {
	// Build one UPDATE statement applying all ops, so a multi-field update
	// (and every counter increment) is atomic.
	expr := "fields"
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args)+1) // $1 is the path
	}

	for _, u := range updates {
		switch u.Op {
		case store.Set:
			encoded, err := json.Marshal(u.Value)
			if err != nil {
				return fmt.Errorf("failed to encode field %q: %w", u.Field, err)
			}
			expr = fmt.Sprintf("jsonb_set(%s, ARRAY[%s], %s::jsonb, true)",
				expr, next(u.Field), next(string(encoded)))
		case store.Increment:
			field := next(u.Field)
			expr = fmt.Sprintf("jsonb_set(%s, ARRAY[%s], to_jsonb(COALESCE((fields->>%s)::bigint, 0) + %s::bigint), true)",
				expr, field, field, next(u.Value.(int64)))
		case store.ServerTimestamp:
			expr = fmt.Sprintf("jsonb_set(%s, ARRAY[%s], to_jsonb(now()), true)",
				expr, next(u.Field))
		}
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE documents SET fields = %s WHERE path = $1", expr),
		append([]any{path}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return notFound(path)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, path string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE path = $1", path)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return notFound(path)
	}
	return nil
}

// fieldsExpr renders the jsonb expression for a document's fields, replacing
// store.ServerTime markers with now() so timestamps are assigned at commit.
// firstArg is the number of the first free placeholder.
func fieldsExpr(fields map[string]any, firstArg int) (string, []any, error) {
	plain := make(map[string]any, len(fields))
	var serverTimed []string
	for k, v := range fields {
		if _, ok := v.(store.ServerTime); ok {
			serverTimed = append(serverTimed, k)
			continue
		}
		plain[k] = v
	}

	encoded, err := json.Marshal(plain)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode fields: %w", err)
	}

	expr := fmt.Sprintf("$%d::jsonb", firstArg)
	args := []any{string(encoded)}
	for _, field := range serverTimed {
		firstArg++
		expr = fmt.Sprintf("jsonb_set(%s, ARRAY[$%d], to_jsonb(now()), true)", expr, firstArg)
		args = append(args, field)
	}
	return expr, args, nil
}

func splitPath(path string) (collection, id string, err error) {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return "", "", fmt.Errorf("invalid document path %q", path)
	}
	return path[:idx], path[idx+1:], nil
}

// decodeFields converts a jsonb payload back to the value types the core
// works with: integers as int64, timestamp fields as time.Time, string
// arrays as []string.
func decodeFields(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode document fields: %w", err)
	}

	for k, v := range fields {
		switch tv := v.(type) {
		case json.Number:
			n, err := tv.Int64()
			if err != nil {
				return nil, fmt.Errorf("non-integer numeric field %q: %w", k, err)
			}
			fields[k] = n
		case string:
			if timestampFields[k] {
				ts, err := time.Parse(time.RFC3339Nano, tv)
				if err != nil {
					return nil, fmt.Errorf("malformed timestamp field %q: %w", k, err)
				}
				fields[k] = ts.UTC()
			}
		case []any:
			strs := make([]string, 0, len(tv))
			for _, item := range tv {
				str, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("non-string array element in field %q", k)
				}
				strs = append(strs, str)
			}
			fields[k] = strs
		}
	}
	return fields, nil
}
