package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otoboard/otoboard/internal/domain"
)

type mockAggregateService struct {
	loadFunc func(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error)
}

func (m *mockAggregateService) Load(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error) {
	return m.loadFunc(ctx, ref, viewer)
}

func (m *mockAggregateService) Channel(ctx context.Context, ref domain.ChannelRef) (domain.Channel, error) {
	return domain.Channel{}, nil
}

type mockLikeService struct {
	toggleFunc func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error)
}

func (m *mockLikeService) Toggle(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
	return m.toggleFunc(ctx, entity, viewer)
}

type mockComposerService struct {
	submitFunc func(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error)
}

func (m *mockComposerService) Submit(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
	return m.submitFunc(ctx, thread, draft)
}

func (m *mockComposerService) ReplyTarget(ctx context.Context, thread domain.ThreadRef, id domain.CommentId) (*domain.ReplyTarget, error) {
	return nil, nil
}

type mockSettingsService struct {
	loadFunc func(ctx context.Context, user domain.UserId) (domain.UserSettings, error)
	saveFunc func(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error
}

func (m *mockSettingsService) Load(ctx context.Context, user domain.UserId) (domain.UserSettings, error) {
	return m.loadFunc(ctx, user)
}

func (m *mockSettingsService) Save(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error {
	return m.saveFunc(ctx, user, key, value)
}

func enteredScreen(t *testing.T, likes LikeService, composer ComposerService) (*ThreadScreen, *Session) {
	t.Helper()
	session := NewSession(domain.User{Id: "u2", Name: "Student"})
	aggregate := &mockAggregateService{
		loadFunc: func(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error) {
			return domain.ThreadView{
				Thread: domain.Thread{Id: "t1", LikeCount: 24, CommentCount: 1},
				Comments: []domain.CommentView{
					{Comment: domain.Comment{Id: "c1", Author: domain.Author{Id: "u1", Name: "Instructor"}, LikeCount: 3}},
				},
			}, nil
		},
	}
	screen := NewThreadScreen(session, aggregate, likes, composer)
	require.NoError(t, screen.Enter(context.Background(), domain.ThreadRef{Category: "music", Thread: "t1"}))
	return screen, session
}

func TestThreadScreenEnter(t *testing.T) {
	t.Run("Loads the view for the session's viewer", func(t *testing.T) {
		var seenViewer domain.UserId
		session := NewSession(domain.User{Id: "u2"})
		aggregate := &mockAggregateService{
			loadFunc: func(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error) {
				seenViewer = viewer
				return domain.ThreadView{Thread: domain.Thread{Id: "t1"}}, nil
			},
		}
		screen := NewThreadScreen(session, aggregate, nil, nil)

		err := screen.Enter(context.Background(), domain.ThreadRef{Category: "music", Thread: "t1"})
		require.NoError(t, err)
		assert.Equal(t, domain.UserId("u2"), seenViewer)
		require.NotNil(t, session.Thread)
		assert.Equal(t, domain.ThreadId("t1"), session.Thread.Id)
	})

	t.Run("Load failure leaves the session empty", func(t *testing.T) {
		session := NewSession(domain.User{Id: "u2"})
		aggregate := &mockAggregateService{
			loadFunc: func(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error) {
				return domain.ThreadView{}, assert.AnError
			},
		}
		screen := NewThreadScreen(session, aggregate, nil, nil)

		err := screen.Enter(context.Background(), domain.ThreadRef{Category: "music", Thread: "t1"})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, session.Thread)
	})
}

func TestThreadScreenToggle(t *testing.T) {
	t.Run("Confirmed thread toggle lands in the session", func(t *testing.T) {
		likes := &mockLikeService{
			toggleFunc: func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
				return domain.LikeResult{Liked: true, NewCount: 25}, nil
			},
		}
		screen, session := enteredScreen(t, likes, nil)

		res, err := screen.ToggleThreadLike(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.LikeResult{Liked: true, NewCount: 25}, res)
		assert.True(t, session.Thread.IsLiked)
		assert.Equal(t, int64(25), session.Thread.LikeCount)
	})

	t.Run("Failed toggle leaves the session untouched", func(t *testing.T) {
		likes := &mockLikeService{
			toggleFunc: func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
				return domain.LikeResult{}, assert.AnError
			},
		}
		screen, session := enteredScreen(t, likes, nil)

		_, err := screen.ToggleThreadLike(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, session.Thread.IsLiked)
		assert.Equal(t, int64(24), session.Thread.LikeCount)
	})

	t.Run("Comment toggle targets the comment", func(t *testing.T) {
		likes := &mockLikeService{
			toggleFunc: func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
				return domain.LikeResult{Liked: true, NewCount: 4}, nil
			},
		}
		screen, session := enteredScreen(t, likes, nil)

		res, err := screen.ToggleCommentLike(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.NewCount)
		assert.True(t, session.Thread.Comments[0].IsLiked)
		assert.False(t, session.Thread.IsLiked, "thread state untouched")
	})

	t.Run("Overlapping toggle on the same entity is refused", func(t *testing.T) {
		var screen *ThreadScreen
		var overlapErr error
		likes := &mockLikeService{
			toggleFunc: func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
				// Re-entry while the first toggle is still in flight.
				_, overlapErr = screen.ToggleThreadLike(ctx)
				return domain.LikeResult{Liked: true, NewCount: 25}, nil
			},
		}
		screen, _ = enteredScreen(t, likes, nil)

		_, err := screen.ToggleThreadLike(context.Background())
		require.NoError(t, err)
		assert.ErrorIs(t, overlapErr, ErrTogglePending)
	})

	t.Run("Pending guard is per entity", func(t *testing.T) {
		var screen *ThreadScreen
		var commentErr error
		toggled := false
		likes := &mockLikeService{
			toggleFunc: func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
				if !toggled {
					toggled = true
					_, commentErr = screen.ToggleCommentLike(ctx, "c1")
				}
				return domain.LikeResult{Liked: true, NewCount: 1}, nil
			},
		}
		screen, _ = enteredScreen(t, likes, nil)

		_, err := screen.ToggleThreadLike(context.Background())
		require.NoError(t, err)
		assert.NoError(t, commentErr, "a different entity toggles freely")
	})

	t.Run("Guard clears once the toggle settles", func(t *testing.T) {
		likes := &mockLikeService{
			toggleFunc: func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
				return domain.LikeResult{}, assert.AnError
			},
		}
		screen, _ := enteredScreen(t, likes, nil)

		_, err := screen.ToggleThreadLike(context.Background())
		assert.ErrorIs(t, err, assert.AnError)

		_, err = screen.ToggleThreadLike(context.Background())
		assert.ErrorIs(t, err, assert.AnError, "second attempt reaches the service again")
	})
}

func TestThreadScreenSubmit(t *testing.T) {
	t.Run("Successful comment is appended to the session", func(t *testing.T) {
		composer := &mockComposerService{
			submitFunc: func(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
				assert.Equal(t, "Student", draft.Author.Name)
				assert.False(t, draft.IsReply())
				return &domain.CommentView{Comment: domain.Comment{Id: "c2", Content: draft.Text}}, nil
			},
		}
		screen, session := enteredScreen(t, nil, composer)

		view, err := screen.SubmitComment(context.Background(), "great routine")
		require.NoError(t, err)
		require.NotNil(t, view)
		require.Len(t, session.Thread.Comments, 2)
		assert.Equal(t, domain.CommentId("c2"), session.Thread.Comments[1].Id)
		assert.Equal(t, int64(2), session.Thread.CommentCount)
	})

	t.Run("Dropped draft appends nothing", func(t *testing.T) {
		composer := &mockComposerService{
			submitFunc: func(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
				return nil, nil
			},
		}
		screen, session := enteredScreen(t, nil, composer)

		view, err := screen.SubmitComment(context.Background(), "   ")
		require.NoError(t, err)
		assert.Nil(t, view)
		assert.Len(t, session.Thread.Comments, 1)
	})

	t.Run("Reply resolves its target from the loaded set", func(t *testing.T) {
		composer := &mockComposerService{
			submitFunc: func(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
				require.True(t, draft.IsReply())
				assert.Equal(t, domain.CommentId("c1"), draft.ReplyTo.Id)
				assert.Equal(t, "Instructor", draft.ReplyTo.AuthorName)
				return &domain.CommentView{Comment: domain.Comment{Id: "c2"}}, nil
			},
		}
		screen, _ := enteredScreen(t, nil, composer)

		_, err := screen.SubmitReply(context.Background(), "agreed", "c1")
		require.NoError(t, err)
	})

	t.Run("Reply to a missing target degrades to a plain comment", func(t *testing.T) {
		composer := &mockComposerService{
			submitFunc: func(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
				assert.False(t, draft.IsReply())
				return &domain.CommentView{Comment: domain.Comment{Id: "c2"}}, nil
			},
		}
		screen, _ := enteredScreen(t, nil, composer)

		view, err := screen.SubmitReply(context.Background(), "agreed", "gone")
		require.NoError(t, err)
		assert.NotNil(t, view)
	})

	t.Run("Submit failure appends nothing", func(t *testing.T) {
		composer := &mockComposerService{
			submitFunc: func(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
				return nil, assert.AnError
			},
		}
		screen, session := enteredScreen(t, nil, composer)

		_, err := screen.SubmitComment(context.Background(), "great routine")
		assert.ErrorIs(t, err, assert.AnError)
		assert.Len(t, session.Thread.Comments, 1)
		assert.Equal(t, int64(1), session.Thread.CommentCount)
	})
}

func TestSettingsScreen(t *testing.T) {
	t.Run("Enter loads the snapshot into the session", func(t *testing.T) {
		session := NewSession(domain.User{Id: "u2"})
		settings := &mockSettingsService{
			loadFunc: func(ctx context.Context, user domain.UserId) (domain.UserSettings, error) {
				assert.Equal(t, domain.UserId("u2"), user)
				return domain.UserSettings{DarkMode: true, Notifications: false, FabEnabled: true}, nil
			},
		}
		screen := NewSettingsScreen(session, settings)

		require.NoError(t, screen.Enter(context.Background()))
		assert.True(t, session.Settings.DarkMode)
		assert.False(t, session.Settings.Notifications)
	})

	t.Run("Toggle applies locally before the remote write", func(t *testing.T) {
		session := NewSession(domain.User{Id: "u2"})
		settings := &mockSettingsService{
			saveFunc: func(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error {
				assert.True(t, session.Settings.DarkMode, "local toggle already applied")
				return nil
			},
		}
		screen := NewSettingsScreen(session, settings)

		require.NoError(t, screen.Toggle(context.Background(), domain.SettingDarkMode, true))
		assert.True(t, session.Settings.DarkMode)
	})

	t.Run("Remote failure is surfaced without reverting the toggle", func(t *testing.T) {
		session := NewSession(domain.User{Id: "u2"})
		settings := &mockSettingsService{
			saveFunc: func(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error {
				return assert.AnError
			},
		}
		screen := NewSettingsScreen(session, settings)

		err := screen.Toggle(context.Background(), domain.SettingDarkMode, true)
		assert.ErrorIs(t, err, assert.AnError)
		assert.True(t, session.Settings.DarkMode)
	})
}
