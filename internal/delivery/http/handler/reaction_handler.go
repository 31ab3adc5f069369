package handler

import (
	"net/http"

	"nightingale/internal/delivery/http/middleware"
	"nightingale/internal/domain/entity"
	"nightingale/internal/usecase"
	"nightingale/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ReactionHandler struct {
	reactionUsecase usecase.ReactionUsecase
}

func NewReactionHandler(reactionUsecase usecase.ReactionUsecase) *ReactionHandler {
	return &ReactionHandler{
		reactionUsecase: reactionUsecase,
	}
}

func (h *ReactionHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, entity.ReactionLike)
}

func (h *ReactionHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, entity.ReactionDislike)
}

func (h *ReactionHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	h.unreact(w, r, entity.ReactionLike)
}

func (h *ReactionHandler) RemoveDislike(w http.ResponseWriter, r *http.Request) {
	h.unreact(w, r, entity.ReactionDislike)
}

func (h *ReactionHandler) react(w http.ResponseWriter, r *http.Request, kind entity.ReactionKind) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	postID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	result, err := h.reactionUsecase.React(r.Context(), userID, postID, kind)
	if err != nil {
		switch err {
		case usecase.ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case usecase.ErrAlreadyReacted:
			response.BadRequest(w, "You have already "+string(kind)+"d this post")
		case usecase.ErrReactionConflict:
			response.Conflict(w, "Reaction was changed concurrently, try again")
		default:
			response.InternalServerError(w, "Failed to "+string(kind)+" post")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Post "+string(kind)+"d successfully", result)
}

func (h *ReactionHandler) unreact(w http.ResponseWriter, r *http.Request, kind entity.ReactionKind) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	postID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	result, err := h.reactionUsecase.Unreact(r.Context(), userID, postID, kind)
	if err != nil {
		switch err {
		case usecase.ErrReactionNotFound:
			response.NotFound(w, "You have not "+string(kind)+"d this post")
		default:
			response.InternalServerError(w, "Failed to remove "+string(kind))
		}
		return
	}

	response.Success(w, http.StatusOK, "Reaction removed successfully", result)
}
