package api

import "github.com/otoboard/otoboard/internal/domain"

// Request DTOs

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
	// Optional id of the comment being replied to. The author-name snapshot
	// is resolved server side, never trusted from the client.
	ReplyToId string `json:"replyToId,omitempty"`
}

type UpdateSettingRequest struct {
	Value *bool `json:"value" validate:"required"`
}

// Response DTOs

type ThreadResponse struct {
	domain.ThreadView
}

type ChannelResponse struct {
	domain.Channel
}

type CommentResponse struct {
	domain.CommentView
}

type LikeResponse struct {
	domain.LikeResult
}

type SettingsResponse struct {
	domain.UserSettings
}
