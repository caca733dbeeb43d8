package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otoboard/otoboard/internal/domain"
	mw "github.com/otoboard/otoboard/internal/middleware"
)

type MockAggregateService struct {
	MockLoad    func(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error)
	MockChannel func(ctx context.Context, ref domain.ChannelRef) (domain.Channel, error)
}

func (m *MockAggregateService) Load(ctx context.Context, ref domain.ThreadRef, viewer domain.UserId) (domain.ThreadView, error) {
	if m.MockLoad != nil {
		return m.MockLoad(ctx, ref, viewer)
	}
	return domain.ThreadView{}, nil
}

func (m *MockAggregateService) Channel(ctx context.Context, ref domain.ChannelRef) (domain.Channel, error) {
	if m.MockChannel != nil {
		return m.MockChannel(ctx, ref)
	}
	return domain.Channel{}, nil
}

type MockLikeService struct {
	MockToggle func(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error)
}

func (m *MockLikeService) Toggle(ctx context.Context, entity domain.Likeable, viewer domain.UserId) (domain.LikeResult, error) {
	if m.MockToggle != nil {
		return m.MockToggle(ctx, entity, viewer)
	}
	return domain.LikeResult{}, nil
}

type MockComposerService struct {
	MockSubmit      func(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error)
	MockReplyTarget func(ctx context.Context, thread domain.ThreadRef, id domain.CommentId) (*domain.ReplyTarget, error)
}

func (m *MockComposerService) Submit(ctx context.Context, thread domain.ThreadRef, draft domain.CommentCreationData) (*domain.CommentView, error) {
	if m.MockSubmit != nil {
		return m.MockSubmit(ctx, thread, draft)
	}
	return nil, nil
}

func (m *MockComposerService) ReplyTarget(ctx context.Context, thread domain.ThreadRef, id domain.CommentId) (*domain.ReplyTarget, error) {
	if m.MockReplyTarget != nil {
		return m.MockReplyTarget(ctx, thread, id)
	}
	return nil, nil
}

type MockSettingsService struct {
	MockLoad func(ctx context.Context, user domain.UserId) (domain.UserSettings, error)
	MockSave func(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error
}

func (m *MockSettingsService) Load(ctx context.Context, user domain.UserId) (domain.UserSettings, error) {
	if m.MockLoad != nil {
		return m.MockLoad(ctx, user)
	}
	return domain.DefaultSettings(), nil
}

func (m *MockSettingsService) Save(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error {
	if m.MockSave != nil {
		return m.MockSave(ctx, user, key, value)
	}
	return nil
}

type MockPinger struct {
	MockPing func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}

// testRouter mounts the handler's routes without the auth middleware; tests
// inject the user into the request context directly.
func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/v1/categories/{category}/channels/{channel}", h.GetChannel)
	r.Get("/v1/categories/{category}/threads/{thread}", h.GetThread)
	r.Post("/v1/categories/{category}/threads/{thread}/like", h.ToggleThreadLike)
	r.Post("/v1/categories/{category}/threads/{thread}/comments", h.CreateComment)
	r.Post("/v1/categories/{category}/threads/{thread}/comments/{comment}/like", h.ToggleCommentLike)
	r.Get("/v1/users/me/settings", h.GetSettings)
	r.Put("/v1/users/me/settings/{key}", h.UpdateSetting)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	return r
}

func withUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), mw.UserClaimsKey, user)
	return r.WithContext(ctx)
}
