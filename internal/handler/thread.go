package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otoboard/otoboard/internal/api"
	"github.com/otoboard/otoboard/internal/domain"
	mw "github.com/otoboard/otoboard/internal/middleware"
	"github.com/otoboard/otoboard/internal/utils"
)

func threadRef(r *http.Request) domain.ThreadRef {
	return domain.ThreadRef{
		Category: chi.URLParam(r, "category"),
		Thread:   chi.URLParam(r, "thread"),
	}
}

// viewerId is empty for anonymous requests, which read endpoints allow.
func viewerId(r *http.Request) domain.UserId {
	if user := mw.GetUserFromContext(r); user != nil {
		return user.Id
	}
	return ""
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	view, err := h.aggregate.Load(r.Context(), threadRef(r), viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ThreadResponse{ThreadView: view})
}

func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	ref := domain.ChannelRef{
		Category: chi.URLParam(r, "category"),
		Channel:  chi.URLParam(r, "channel"),
	}

	channel, err := h.aggregate.Channel(r.Context(), ref)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ChannelResponse{Channel: channel})
}
