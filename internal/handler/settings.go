package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otoboard/otoboard/internal/api"
	"github.com/otoboard/otoboard/internal/utils"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Load(r.Context(), viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.SettingsResponse{UserSettings: settings})
}

func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateSettingRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	key := chi.URLParam(r, "key")
	if err := h.settings.Save(r.Context(), viewerId(r), key, *body.Value); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
