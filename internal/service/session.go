package service

import "github.com/otoboard/otoboard/internal/domain"

// Session is the screen-scoped state of one forum visit: the loaded thread
// view and the viewer's settings snapshot. It is constructed on screen entry,
// torn down on exit, and owned exclusively by the active screen instance.
// Mutations only happen from completed operations on the owning flow, so no
// locking is carried here.
type Session struct {
	User     domain.User
	Thread   *domain.ThreadView
	Settings domain.UserSettings
}

func NewSession(user domain.User) *Session {
	return &Session{
		User:     user,
		Settings: domain.DefaultSettings(),
	}
}

// Viewer is the acting user id, empty for anonymous visitors.
func (s *Session) Viewer() domain.UserId {
	return s.User.Id
}

func (s *Session) SetThread(view domain.ThreadView) {
	s.Thread = &view
}

// Teardown drops the screen state on exit. Writes still in flight complete
// against the remote store but their local effects land nowhere.
func (s *Session) Teardown() {
	s.Thread = nil
}

func (s *Session) ApplyThreadLike(res domain.LikeResult) {
	if s.Thread == nil {
		return
	}
	s.Thread.IsLiked = res.Liked
	s.Thread.LikeCount = res.NewCount
}

func (s *Session) ApplyCommentLike(id domain.CommentId, res domain.LikeResult) {
	if s.Thread == nil {
		return
	}
	for i := range s.Thread.Comments {
		if s.Thread.Comments[i].Id == id {
			s.Thread.Comments[i].IsLiked = res.Liked
			s.Thread.Comments[i].LikeCount = res.NewCount
			return
		}
	}
}

// AppendComment splices a freshly submitted comment onto the tail of the
// ordered list and bumps the thread's comment counter, ahead of any re-fetch.
func (s *Session) AppendComment(view domain.CommentView) {
	if s.Thread == nil {
		return
	}
	s.Thread.Comments = append(s.Thread.Comments, view)
	s.Thread.CommentCount++
}

func (s *Session) ApplySetting(key domain.SettingKey, value bool) {
	s.Settings.Set(key, value)
}
