package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otoboard/otoboard/internal/api"
	"github.com/otoboard/otoboard/internal/utils"
)

func (h *Handler) ToggleThreadLike(w http.ResponseWriter, r *http.Request) {
	res, err := h.likes.Toggle(r.Context(), threadRef(r), viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.LikeResponse{LikeResult: res})
}

func (h *Handler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	ref := threadRef(r).Comment(chi.URLParam(r, "comment"))

	res, err := h.likes.Toggle(r.Context(), ref, viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.LikeResponse{LikeResult: res})
}
