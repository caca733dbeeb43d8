package service

import (
	"time"

	"github.com/otoboard/otoboard/internal/domain"
	"github.com/otoboard/otoboard/internal/store"
)

// Field names of the remote document layout.
const (
	fieldName          = "name"
	fieldTitle         = "title"
	fieldContent       = "content"
	fieldAuthorId      = "authorId"
	fieldAuthorName    = "authorName"
	fieldAuthorAvatar  = "authorAvatar"
	fieldCreatedAt     = "createdAt"
	fieldChannelId     = "channelId"
	fieldLikeCount     = "likeCount"
	fieldCommentCount  = "commentCount"
	fieldTags          = "tags"
	fieldImageUrl      = "imageUrl"
	fieldLastActivity  = "lastActivity"
	fieldUserId        = "userId"
	fieldReplyToId     = "replyToId"
	fieldReplyToAuthor = "replyToAuthor"
)

func channelFromDoc(doc store.Document) domain.Channel {
	return domain.Channel{
		Id:   doc.ID,
		Name: str(doc.Fields, fieldName),
	}
}

func threadFromDoc(doc store.Document) domain.Thread {
	return domain.Thread{
		Id:           doc.ID,
		Title:        str(doc.Fields, fieldTitle),
		Content:      str(doc.Fields, fieldContent),
		Author:       authorFromDoc(doc.Fields),
		CreatedAt:    ts(doc.Fields, fieldCreatedAt),
		ChannelId:    str(doc.Fields, fieldChannelId),
		LikeCount:    i64(doc.Fields, fieldLikeCount),
		CommentCount: i64(doc.Fields, fieldCommentCount),
		Tags:         strs(doc.Fields, fieldTags),
		ImageUrl:     str(doc.Fields, fieldImageUrl),
		LastActivity: ts(doc.Fields, fieldLastActivity),
	}
}

func commentFromDoc(doc store.Document) domain.Comment {
	return domain.Comment{
		Id:            doc.ID,
		Content:       str(doc.Fields, fieldContent),
		Author:        authorFromDoc(doc.Fields),
		CreatedAt:     ts(doc.Fields, fieldCreatedAt),
		LikeCount:     i64(doc.Fields, fieldLikeCount),
		ReplyToId:     str(doc.Fields, fieldReplyToId),
		ReplyToAuthor: str(doc.Fields, fieldReplyToAuthor),
		ImageUrl:      str(doc.Fields, fieldImageUrl),
	}
}

func authorFromDoc(fields map[string]any) domain.Author {
	return domain.Author{
		Id:        str(fields, fieldAuthorId),
		Name:      str(fields, fieldAuthorName),
		AvatarUrl: str(fields, fieldAuthorAvatar),
	}
}

// Missing or mistyped fields fall back to zero values, matching how the
// original screens treated partially-populated documents.

func str(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}

func i64(fields map[string]any, key string) int64 {
	v, _ := fields[key].(int64)
	return v
}

func ts(fields map[string]any, key string) time.Time {
	v, _ := fields[key].(time.Time)
	return v
}

func strs(fields map[string]any, key string) []string {
	v, _ := fields[key].([]string)
	return v
}
