package service

import (
	"context"
	"errors"

	"github.com/otoboard/otoboard/internal/domain"
	"github.com/otoboard/otoboard/internal/logger"
)

// ErrTogglePending is returned when a like toggle is requested for an entity
// whose previous toggle has not settled yet. The UI disables the control
// while a toggle is pending; hitting this means the guard did its job.
var ErrTogglePending = errors.New("like toggle still pending for this entity")

// ThreadScreen drives the user actions of the thread-detail screen thru the
// services with the right sync strategy per action: like toggles confirm
// before applying, comment submission is write-first with a local append on
// success. State lives in the screen-scoped session.
type ThreadScreen struct {
	session   *Session
	ref       domain.ThreadRef
	aggregate AggregateService
	likes     LikeService
	composer  ComposerService

	// pending like toggles by entity path; the screen flow is
	// single-threaded, so a plain map is the right guard.
	pending map[string]bool
}

func NewThreadScreen(session *Session, aggregate AggregateService, likes LikeService, composer ComposerService) *ThreadScreen {
	return &ThreadScreen{
		session:   session,
		aggregate: aggregate,
		likes:     likes,
		composer:  composer,
		pending:   make(map[string]bool),
	}
}

// Enter loads the thread view into the session. Called once per screen visit;
// data is only re-fetched on a fresh entry.
func (s *ThreadScreen) Enter(ctx context.Context, ref domain.ThreadRef) error {
	view, err := s.aggregate.Load(ctx, ref, s.session.Viewer())
	if err != nil {
		return err
	}
	s.ref = ref
	s.session.SetThread(view)
	return nil
}

func (s *ThreadScreen) ToggleThreadLike(ctx context.Context) (domain.LikeResult, error) {
	return s.toggle(ctx, s.ref, func(res domain.LikeResult) {
		s.session.ApplyThreadLike(res)
	})
}

func (s *ThreadScreen) ToggleCommentLike(ctx context.Context, id domain.CommentId) (domain.LikeResult, error) {
	return s.toggle(ctx, s.ref.Comment(id), func(res domain.LikeResult) {
		s.session.ApplyCommentLike(id, res)
	})
}

func (s *ThreadScreen) toggle(ctx context.Context, entity domain.Likeable, apply func(domain.LikeResult)) (domain.LikeResult, error) {
	path := entity.Path()
	if s.pending[path] {
		return domain.LikeResult{}, ErrTogglePending
	}
	s.pending[path] = true
	defer delete(s.pending, path)

	var res domain.LikeResult
	err := ConfirmThenApply.Run(
		func() { apply(res) },
		func() error {
			var err error
			res, err = s.likes.Toggle(ctx, entity, s.session.Viewer())
			return err
		},
	)
	if err != nil {
		return domain.LikeResult{}, err
	}
	return res, nil
}

// SubmitComment posts a plain comment. A nil view (whitespace-only draft)
// leaves the session untouched.
func (s *ThreadScreen) SubmitComment(ctx context.Context, text string) (*domain.CommentView, error) {
	author := s.author()
	return s.submit(ctx, domain.NewComment(text, author))
}

// SubmitReply posts a reply to a loaded comment. The reply target is resolved
// from the in-memory comment set; if it is no longer there, the submission
// degrades to a plain comment rather than failing.
func (s *ThreadScreen) SubmitReply(ctx context.Context, text string, replyToId domain.CommentId) (*domain.CommentView, error) {
	author := s.author()

	var comments []domain.CommentView
	if s.session.Thread != nil {
		comments = s.session.Thread.Comments
	}
	target := ResolveReply(comments, replyToId)
	if target == nil {
		logger.Log.Warn("reply target not in loaded set, posting as plain comment",
			"replyToId", replyToId)
		return s.submit(ctx, domain.NewComment(text, author))
	}

	draft, err := domain.NewReply(text, author, domain.ReplyTarget{Id: target.Id, AuthorName: target.Author.Name})
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, draft)
}

func (s *ThreadScreen) submit(ctx context.Context, draft domain.CommentCreationData) (*domain.CommentView, error) {
	view, err := s.composer.Submit(ctx, s.ref, draft)
	if err != nil || view == nil {
		return nil, err
	}
	s.session.AppendComment(*view)
	return view, nil
}

func (s *ThreadScreen) author() domain.Author {
	return s.session.User.Author()
}

// SettingsScreen drives the settings controls: the local toggle applies
// instantly, the remote write is fired after, and its failure is surfaced
// without reverting the toggle.
type SettingsScreen struct {
	session  *Session
	settings SettingsService
}

func NewSettingsScreen(session *Session, settings SettingsService) *SettingsScreen {
	return &SettingsScreen{session: session, settings: settings}
}

func (s *SettingsScreen) Enter(ctx context.Context) error {
	loaded, err := s.settings.Load(ctx, s.session.Viewer())
	if err != nil {
		return err
	}
	s.session.Settings = loaded
	return nil
}

func (s *SettingsScreen) Toggle(ctx context.Context, key domain.SettingKey, value bool) error {
	return ApplyThenConfirm.Run(
		func() { s.session.ApplySetting(key, value) },
		func() error { return s.settings.Save(ctx, s.session.Viewer(), key, value) },
	)
}
