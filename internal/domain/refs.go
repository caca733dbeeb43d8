package domain

import "fmt"

// Refs build the document-store paths of the forum layout:
//
//	categories/{categoryId}/channels/{channelId}
//	categories/{categoryId}/threads/{threadId}
//	categories/{categoryId}/threads/{threadId}/likes/{likeId}
//	categories/{categoryId}/threads/{threadId}/comments/{commentId}
//	categories/{categoryId}/threads/{threadId}/comments/{commentId}/likes/{likeId}
//	users/{userId}/settings/app

type ChannelRef struct {
	Category CategoryId
	Channel  ChannelId
}

func (r ChannelRef) Path() string {
	return fmt.Sprintf("categories/%s/channels/%s", r.Category, r.Channel)
}

type ThreadRef struct {
	Category CategoryId
	Thread   ThreadId
}

func (r ThreadRef) Path() string {
	return fmt.Sprintf("categories/%s/threads/%s", r.Category, r.Thread)
}

func (r ThreadRef) LikesPath() string {
	return r.Path() + "/likes"
}

func (r ThreadRef) CommentsPath() string {
	return r.Path() + "/comments"
}

func (r ThreadRef) Comment(id CommentId) CommentRef {
	return CommentRef{Thread: r, Comment: id}
}

type CommentRef struct {
	Thread  ThreadRef
	Comment CommentId
}

func (r CommentRef) Path() string {
	return fmt.Sprintf("%s/%s", r.Thread.CommentsPath(), r.Comment)
}

func (r CommentRef) LikesPath() string {
	return r.Path() + "/likes"
}

// Likeable is either a thread or a comment: an entity document carrying a
// likeCount field next to a likes sub-collection. Satisfied by ThreadRef and
// CommentRef so the toggle is reusable for both.
type Likeable interface {
	Path() string
	LikesPath() string
}

// SettingsPath resolves the per-user settings document.
func SettingsPath(user UserId) string {
	return fmt.Sprintf("users/%s/settings/app", user)
}
