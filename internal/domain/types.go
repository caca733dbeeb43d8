package domain

type (
	UserId     = string
	CategoryId = string
	ChannelId  = string
	ThreadId   = string
	CommentId  = string

	SettingKey = string
)
