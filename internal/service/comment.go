package service

import (
	"context"
	"errors"
	"strings"

	"github.com/otoboard/otoboard/internal/domain"
	internal_errors "github.com/otoboard/otoboard/internal/errors"
	"github.com/otoboard/otoboard/internal/service/utils"
	"github.com/otoboard/otoboard/internal/store"
)

// ComposerService validates and submits a new comment, optionally a reply.
type ComposerService interface {
	Submit(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error)
	ReplyTarget(ctx context.Context, thread domain.ThreadRef, id domain.CommentId) (*domain.ReplyTarget, error)
}

type CommentValidator interface {
	Text(text string) error
}

type Composer struct {
	storage   store.Store
	validator CommentValidator
}

func NewComposer(storage store.Store, validator CommentValidator) *Composer {
	return &Composer{storage, validator}
}

// Submit writes the comment document, then bumps the parent thread's
// commentCount and lastActivity. Write-first: nothing is constructed for the
// caller unless the comment write succeeded, because shown content cannot be
// meaningfully undone visually.
//
// Whitespace-only drafts are dropped silently: (nil, nil), no store call.
func (c *Composer) Submit(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
	if draft.Empty() {
		return nil, nil
	}
	if draft.Author.Id == "" {
		return nil, internal_errors.NewUnauthenticated("commenting")
	}

	text := utils.SanitizeText(strings.TrimSpace(draft.Text))
	if text == "" {
		return nil, nil
	}
	if err := c.validator.Text(text); err != nil {
		return nil, err
	}

	threadDoc, err := c.storage.Get(ctx, thread.Path())
	if err != nil {
		return nil, mapNotFound(err, "Thread")
	}
	threadAuthor := str(threadDoc.Fields, fieldAuthorId)

	fields := map[string]any{
		fieldContent:      text,
		fieldAuthorId:     draft.Author.Id,
		fieldAuthorName:   draft.Author.Name,
		fieldAuthorAvatar: draft.Author.AvatarUrl,
		fieldCreatedAt:    store.ServerTime{},
		fieldLikeCount:    int64(0),
	}
	if draft.IsReply() {
		// Denormalized snapshot: the target's author name is stamped at
		// submission time and never re-fetched.
		fields[fieldReplyToId] = draft.ReplyTo.Id
		fields[fieldReplyToAuthor] = draft.ReplyTo.AuthorName
	}

	doc, err := c.storage.Add(ctx, thread.CommentsPath(), fields)
	if err != nil {
		return nil, err
	}

	err = c.storage.Update(ctx, thread.Path(), []store.Update{
		store.IncrementField(fieldCommentCount, 1),
		store.ServerTimestampField(fieldLastActivity),
	})
	if err != nil {
		return nil, err
	}

	view := domain.CommentView{
		Comment:        commentFromDoc(doc),
		IsLiked:        false,
		IsThreadAuthor: draft.Author.Id == threadAuthor,
	}
	return &view, nil
}

// ReplyTarget resolves the author-name snapshot for a reply submitted thru
// the API, where no loaded comment set exists to resolve it from. A missing
// or nameless target yields (nil, nil) so the submission degrades to a plain
// comment instead of failing.
func (c *Composer) ReplyTarget(ctx context.Context, thread domain.ThreadRef, id domain.CommentId) (*domain.ReplyTarget, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := c.storage.Get(ctx, thread.Comment(id).Path())
	if err != nil {
		if errors.Is(err, internal_errors.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	name := str(doc.Fields, fieldAuthorName)
	if name == "" {
		return nil, nil
	}
	return &domain.ReplyTarget{Id: id, AuthorName: name}, nil
}
