package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/otoboard/otoboard/internal/config"
	"github.com/otoboard/otoboard/internal/logger"
	"github.com/otoboard/otoboard/internal/service"
)

// Pinger is the readiness dependency, satisfied by the store adapters.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	aggregate service.AggregateService
	likes     service.LikeService
	composer  service.ComposerService
	settings  service.SettingsService
	health    Pinger
	cfg       *config.Config
}

func New(aggregate service.AggregateService, likes service.LikeService, composer service.ComposerService, settings service.SettingsService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{aggregate, likes, composer, settings, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}
