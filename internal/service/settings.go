package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/otoboard/otoboard/internal/domain"
	internal_errors "github.com/otoboard/otoboard/internal/errors"
	"github.com/otoboard/otoboard/internal/store"
)

// SettingsService reconciles the local settings snapshot with the remote
// per-user settings document, one key at a time.
type SettingsService interface {
	Load(ctx context.Context, user domain.UserId) (domain.UserSettings, error)
	Save(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error
}

type Settings struct {
	storage store.Store
}

func NewSettings(storage store.Store) *Settings {
	return &Settings{storage}
}

// Load merges the remotely stored keys over the built-in defaults. Keys
// absent remotely keep their default value. A user with no settings document
// yet gets plain defaults.
func (s *Settings) Load(ctx context.Context, user domain.UserId) (domain.UserSettings, error) {
	if user == "" {
		return domain.UserSettings{}, internal_errors.NewUnauthenticated("loading settings")
	}

	settings := domain.DefaultSettings()
	doc, err := s.storage.Get(ctx, domain.SettingsPath(user))
	if err != nil {
		if errors.Is(err, internal_errors.NotFound) {
			return settings, nil
		}
		return domain.UserSettings{}, err
	}

	for _, key := range []domain.SettingKey{domain.SettingDarkMode, domain.SettingNotifications, domain.SettingFabEnabled} {
		if value, ok := doc.Fields[key].(bool); ok {
			settings.Set(key, value)
		}
	}
	return settings, nil
}

// Save persists a single key as a merge write, so sibling keys are never
// clobbered by concurrent saves of other keys.
func (s *Settings) Save(ctx context.Context, user domain.UserId, key domain.SettingKey, value bool) error {
	if user == "" {
		return internal_errors.NewUnauthenticated("saving settings")
	}
	if !domain.KnownSettingKey(key) {
		return &internal_errors.ErrorWithStatusCode{Message: "Unknown setting key", StatusCode: http.StatusBadRequest}
	}
	return s.storage.Set(ctx, domain.SettingsPath(user), map[string]any{key: value}, true)
}
