package domain

import "time"

type Channel struct {
	Id   ChannelId `json:"id"`
	Name string    `json:"name"`
}

type Thread struct {
	Id           ThreadId  `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       Author    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	ChannelId    ChannelId `json:"channelId"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	Tags         []string  `json:"tags"`
	ImageUrl     string    `json:"imageUrl,omitempty"`
	LastActivity time.Time `json:"lastActivity"`
}

// ThreadView is the read model assembled for one screen visit: the thread,
// the viewer's like state and the decorated, ordered comment list.
type ThreadView struct {
	Thread
	IsLiked  bool          `json:"isLiked"`
	Comments []CommentView `json:"comments"`
}

// LikeResult is the outcome of one successful like toggle.
type LikeResult struct {
	Liked    bool  `json:"liked"`
	NewCount int64 `json:"newCount"`
}
