package handler

import (
	"net/http"

	"github.com/otoboard/otoboard/internal/api"
	"github.com/otoboard/otoboard/internal/domain"
	"github.com/otoboard/otoboard/internal/logger"
	mw "github.com/otoboard/otoboard/internal/middleware"
	"github.com/otoboard/otoboard/internal/utils"
)

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread := threadRef(r)

	draft := domain.NewComment(body.Text, user.Author())
	if body.ReplyToId != "" {
		target, err := h.composer.ReplyTarget(r.Context(), thread, body.ReplyToId)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		if target == nil {
			// Target gone between client render and submit. Post as a plain
			// comment rather than failing.
			logger.Log.Warn("reply target not found, posting as plain comment",
				"thread", thread.Path(), "replyToId", body.ReplyToId)
		} else {
			draft, err = domain.NewReply(body.Text, user.Author(), *target)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
		}
	}

	view, err := h.composer.Submit(r.Context(), thread, draft)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if view == nil {
		// Whitespace-only draft, dropped silently.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.CommentResponse{CommentView: *view})
}
