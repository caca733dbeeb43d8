package service

import (
	"context"

	"github.com/otoboard/otoboard/internal/domain"
	internal_errors "github.com/otoboard/otoboard/internal/errors"
	"github.com/otoboard/otoboard/internal/store"
)

// LikeService is the idempotent add/remove-like operation, reusable for
// threads and comments via domain.Likeable.
type LikeService interface {
	Toggle(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error)
}

type Like struct {
	storage store.Store
}

func NewLike(storage store.Store) *Like {
	return &Like{storage}
}

// Toggle flips the viewer's like on the entity: membership is decided by a
// query-before-write on the likes sub-collection, and the entity counter is
// always adjusted by exactly ±1, never recomputed by counting records.
//
// The check-then-act pair is not atomic against a concurrent toggle by the
// same user; a single UI disables the control until the previous toggle
// settles, and that race window is accepted.
func (l *Like) Toggle(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
	if viewer == "" {
		return domain.LikeResult{}, internal_errors.NewUnauthenticated("liking")
	}

	entityDoc, err := l.storage.Get(ctx, entity.Path())
	if err != nil {
		return domain.LikeResult{}, mapNotFound(err, "Liked entity")
	}
	count := i64(entityDoc.Fields, fieldLikeCount)

	likes, err := l.storage.Query(ctx, entity.LikesPath(), store.Where(fieldUserId, viewer))
	if err != nil {
		return domain.LikeResult{}, err
	}

	if len(likes) == 0 {
		_, err = l.storage.Add(ctx, entity.LikesPath(), map[string]any{
			fieldUserId:    viewer,
			fieldCreatedAt: store.ServerTime{},
		})
		if err != nil {
			return domain.LikeResult{}, err
		}
		if err = l.storage.Update(ctx, entity.Path(), []store.Update{store.IncrementField(fieldLikeCount, 1)}); err != nil {
			return domain.LikeResult{}, err
		}
		return domain.LikeResult{Liked: true, NewCount: count + 1}, nil
	}

	if err = l.storage.Delete(ctx, likes[0].Path); err != nil {
		return domain.LikeResult{}, err
	}
	if err = l.storage.Update(ctx, entity.Path(), []store.Update{store.IncrementField(fieldLikeCount, -1)}); err != nil {
		return domain.LikeResult{}, err
	}
	return domain.LikeResult{Liked: false, NewCount: count - 1}, nil
}
