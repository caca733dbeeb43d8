package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/otoboard/otoboard/internal/domain"
	"github.com/otoboard/otoboard/internal/store"
	"github.com/otoboard/otoboard/internal/store/memory"
)

// --- Mock store ---

// mockStore delegates to an in-memory store by default; individual
// operations can be overridden to inject failures or track calls.
type mockStore struct {
	mem *memory.Store

	getFunc    func(ctx context.Context, path string) (store.Document, error)
	queryFunc  func(ctx context.Context, collection string, q store.Query) ([]store.Document, error)
	addFunc    func(ctx context.Context, collection string, fields map[string]any) (store.Document, error)
	setFunc    func(ctx context.Context, path string, fields map[string]any, merge bool) error
	updateFunc func(ctx context.Context, path string, updates []store.Update) error
	deleteFunc func(ctx context.Context, path string) error
}

func newMockStore() *mockStore {
	return &mockStore{mem: memory.New()}
}

func (m *mockStore) Get(ctx context.Context, path string) (store.Document, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, path)
	}
	return m.mem.Get(ctx, path)
}

func (m *mockStore) Query(ctx context.Context, collection string, q store.Query) ([]store.Document, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, collection, q)
	}
	return m.mem.Query(ctx, collection, q)
}

func (m *mockStore) Add(ctx context.Context, collection string, fields map[string]any) (store.Document, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, collection, fields)
	}
	return m.mem.Add(ctx, collection, fields)
}

func (m *mockStore) Set(ctx context.Context, path string, fields map[string]any, merge bool) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, path, fields, merge)
	}
	return m.mem.Set(ctx, path, fields, merge)
}

func (m *mockStore) Update(ctx context.Context, path string, updates []store.Update) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, path, updates)
	}
	return m.mem.Update(ctx, path, updates)
}

func (m *mockStore) Delete(ctx context.Context, path string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, path)
	}
	return m.mem.Delete(ctx, path)
}

func (m *mockStore) Ping(ctx context.Context) error { return nil }

// --- Seed helpers ---

var testBase = time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)

func seedThread(t *testing.T, s *mockStore, ref domain.ThreadRef, author domain.Author, likeCount, commentCount int64) {
	t.Helper()
	err := s.mem.Set(context.Background(), ref.Path(), map[string]any{
		fieldTitle:        "How to practice the flute",
		fieldContent:      "Looking for long-tone routines.",
		fieldAuthorId:     author.Id,
		fieldAuthorName:   author.Name,
		fieldAuthorAvatar: author.AvatarUrl,
		fieldCreatedAt:    testBase,
		fieldChannelId:    "flute",
		fieldLikeCount:    likeCount,
		fieldCommentCount: commentCount,
		fieldTags:         []string{"flute", "beginners"},
	}, false)
	require.NoError(t, err)
}

func seedComment(t *testing.T, s *mockStore, ref domain.ThreadRef, id domain.CommentId, author domain.Author, createdAt time.Time, extra map[string]any) {
	t.Helper()
	fields := map[string]any{
		fieldContent:      "comment " + id,
		fieldAuthorId:     author.Id,
		fieldAuthorName:   author.Name,
		fieldAuthorAvatar: author.AvatarUrl,
		fieldCreatedAt:    createdAt,
		fieldLikeCount:    int64(0),
	}
	for k, v := range extra {
		fields[k] = v
	}
	err := s.mem.Set(context.Background(), ref.CommentsPath()+"/"+id, fields, false)
	require.NoError(t, err)
}

func seedLike(t *testing.T, s *mockStore, likesPath string, user domain.UserId) {
	t.Helper()
	_, err := s.mem.Add(context.Background(), likesPath, map[string]any{
		fieldUserId:    user,
		fieldCreatedAt: testBase,
	})
	require.NoError(t, err)
}

func countLikes(t *testing.T, s *mockStore, likesPath string, user domain.UserId) int {
	t.Helper()
	docs, err := s.mem.Query(context.Background(), likesPath, store.Where(fieldUserId, user))
	require.NoError(t, err)
	return len(docs)
}
