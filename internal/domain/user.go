package domain

// User is the identity yielded by the external auth flow. Only what the
// forum screens consume is carried here.
type User struct {
	Id        UserId
	Name      string
	AvatarUrl string
}

// Author is the denormalized author snapshot stored on threads and comments.
type Author struct {
	Id        UserId `json:"id"`
	Name      string `json:"name"`
	AvatarUrl string `json:"avatarUrl"`
}

func (u User) Author() Author {
	return Author{Id: u.Id, Name: u.Name, AvatarUrl: u.AvatarUrl}
}
