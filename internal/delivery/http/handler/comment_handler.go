package handler

import (
	"encoding/json"
	"net/http"

	"nightingale/internal/delivery/dto"
	"nightingale/internal/delivery/http/middleware"
	"nightingale/internal/usecase"
	"nightingale/pkg/response"
	"nightingale/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CommentHandler struct {
	commentUsecase usecase.CommentUsecase
	validator      *validator.CustomValidator
}

func NewCommentHandler(commentUsecase usecase.CommentUsecase, validator *validator.CustomValidator) *CommentHandler {
	return &CommentHandler{
		commentUsecase: commentUsecase,
		validator:      validator,
	}
}

func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	comments, err := h.commentUsecase.GetComments(r.Context(), postID)
	if err != nil {
		if err == usecase.ErrPostNotFound {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalServerError(w, "Failed to get comments")
		return
	}

	response.Success(w, http.StatusOK, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
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

	var req dto.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.commentUsecase.CreateComment(r.Context(), userID, postID, &req)
	if err != nil {
		if err == usecase.ErrPostNotFound {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalServerError(w, "Failed to create comment")
		return
	}

	response.Success(w, http.StatusCreated, "Comment created successfully", result)
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	comment, err := h.commentUsecase.UpdateComment(r.Context(), userID, postID, commentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case usecase.ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case usecase.ErrCommentNotOwned:
			response.Forbidden(w, "You can only edit your own comments")
		default:
			response.InternalServerError(w, "Failed to update comment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Comment updated successfully", comment)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	postID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	result, err := h.commentUsecase.DeleteComment(r.Context(), userID, postID, commentID)
	if err != nil {
		switch err {
		case usecase.ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case usecase.ErrCommentNotFound:
			response.NotFound(w, "Comment not found")
		case usecase.ErrCommentNotOwned:
			response.Forbidden(w, "You can only delete your own comments")
		default:
			response.InternalServerError(w, "Failed to delete comment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Comment deleted successfully", result)
}

func commentPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	vars := mux.Vars(r)
	postID, err := uuid.Parse(vars["postId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid post ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	commentID, err := uuid.Parse(vars["commentId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid comment ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return postID, commentID, true
}
