package service

import (
	"context"
	"errors"

	"github.com/otoboard/otoboard/internal/domain"
	internal_errors "github.com/otoboard/otoboard/internal/errors"
	"github.com/otoboard/otoboard/internal/store"
)

// AggregateService assembles the read model for one thread-screen visit:
// the thread, its like state for the viewer and the ordered, decorated
// comment list. One request/response pass, no subscription.
type AggregateService interface {
	Load(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error)
	Channel(ctx context.Context, ref domain.ChannelRef) (domain.Channel, error)
}

type Aggregate struct {
	storage store.Store
}

func NewAggregate(storage store.Store) *Aggregate {
	return &Aggregate{storage}
}

func (a *Aggregate) Channel(ctx context.Context, ref domain.ChannelRef) (domain.Channel, error) {
	doc, err := a.storage.Get(ctx, ref.Path())
	if err != nil {
		return domain.Channel{}, mapNotFound(err, "Channel")
	}
	return channelFromDoc(doc), nil
}

func (a *Aggregate) Load(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error) {
	threadDoc, err := a.storage.Get(ctx, ref.Path())
	if err != nil {
		return domain.ThreadView{}, mapNotFound(err, "Thread")
	}
	thread := threadFromDoc(threadDoc)

	isLiked, err := a.isLikedBy(ctx, ref.LikesPath(), viewer)
	if err != nil {
		return domain.ThreadView{}, err
	}

	commentDocs, err := a.storage.Query(ctx, ref.CommentsPath(), store.OrderedAsc(fieldCreatedAt))
	if err != nil {
		return domain.ThreadView{}, err
	}

	comments := make([]domain.CommentView, 0, len(commentDocs))
	for _, doc := range commentDocs {
		comment := commentFromDoc(doc)
		commentLiked, err := a.isLikedBy(ctx, ref.Comment(comment.Id).LikesPath(), viewer)
		if err != nil {
			return domain.ThreadView{}, err
		}
		comments = append(comments, domain.CommentView{
			Comment:        comment,
			IsLiked:        commentLiked,
			IsThreadAuthor: comment.Author.Id == thread.Author.Id,
		})
	}

	return domain.ThreadView{Thread: thread, IsLiked: isLiked, Comments: comments}, nil
}

// isLikedBy checks like-set membership with a single equality query.
// Anonymous viewers never see a liked state.
func (a *Aggregate) isLikedBy(ctx context.Context, likesPath string, viewer domain.UserId) (bool, error) {
	if viewer == "" {
		return false, nil
	}
	likes, err := a.storage.Query(ctx, likesPath, store.Where(fieldUserId, viewer))
	if err != nil {
		return false, err
	}
	return len(likes) > 0, nil
}

// mapNotFound turns the storage-level NotFound sentinel into the
// screen-facing 404 for the named entity. Other errors pass thru unchanged.
func mapNotFound(err error, what string) error {
	if errors.Is(err, internal_errors.NotFound) {
		return internal_errors.NewNotFound(what)
	}
	return err
}
