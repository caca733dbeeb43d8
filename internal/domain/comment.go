package domain

import (
	"strings"
	"time"

	"github.com/otoboard/otoboard/internal/errors"
)

type Comment struct {
	Id            CommentId `json:"id"`
	Content       string    `json:"content"`
	Author        Author    `json:"author"`
	CreatedAt     time.Time `json:"createdAt"`
	LikeCount     int64     `json:"likeCount"`
	ReplyToId     CommentId `json:"replyToId,omitempty"`
	ReplyToAuthor string    `json:"replyToAuthor,omitempty"` // snapshot taken at submission, never re-fetched
	ImageUrl      string    `json:"imageUrl,omitempty"`
}

// CommentView decorates a comment with per-viewer and per-thread state.
type CommentView struct {
	Comment
	IsLiked        bool `json:"isLiked"`
	IsThreadAuthor bool `json:"isThreadAuthor"`
}

// ReplyTarget is the in-memory resolution of the comment being replied to.
type ReplyTarget struct {
	Id         CommentId
	AuthorName string
}

// CommentCreationData carries a validated draft thru layers: handler -> service -> storage.
// Construct via NewComment or NewReply only, so a reply always carries its
// target snapshot and a plain comment never carries reply fields.
type CommentCreationData struct {
	Text    string
	Author  Author
	ReplyTo *ReplyTarget
}

func NewComment(text string, author Author) CommentCreationData {
	return CommentCreationData{Text: text, Author: author}
}

func NewReply(text string, author Author, target ReplyTarget) (CommentCreationData, error) {
	if target.Id == "" || target.AuthorName == "" {
		return CommentCreationData{}, &errors.ValidationError{Message: "reply target must carry an id and an author name"}
	}
	return CommentCreationData{Text: text, Author: author, ReplyTo: &target}, nil
}

// IsReply reports whether the draft targets another comment.
func (d CommentCreationData) IsReply() bool {
	return d.ReplyTo != nil
}

// Empty reports whether the draft has no content after trimming.
// Empty submissions are dropped silently, they are not an error.
func (d CommentCreationData) Empty() bool {
	return strings.TrimSpace(d.Text) == ""
}
