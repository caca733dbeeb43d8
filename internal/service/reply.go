package service

import "github.com/otoboard/otoboard/internal/domain"

// ResolveReply finds the display target of a reply in the already-loaded
// comment set. Linear scan; thread sizes are small enough that an index is
// not worth carrying.
//
// A nil result means "show the comment without a reply banner", never an
// error: the target may have been deleted or simply not loaded.
func ResolveReply(comments []domain.CommentView, replyToId domain.CommentId) *domain.CommentView {
	if replyToId == "" {
		return nil
	}
	for i := range comments {
		if comments[i].Id == replyToId {
			return &comments[i]
		}
	}
	return nil
}
