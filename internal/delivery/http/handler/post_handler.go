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

type PostHandler struct {
	postUsecase usecase.PostUsecase
	validator   *validator.CustomValidator
}

func NewPostHandler(postUsecase usecase.PostUsecase, validator *validator.CustomValidator) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		validator:   validator,
	}
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	post, err := h.postUsecase.CreatePost(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to create post")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Post created successfully", post)
}

func (h *PostHandler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postUsecase.GetAllPosts(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get posts")
		return
	}

	response.Success(w, http.StatusOK, "Posts retrieved successfully", posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	post, err := h.postUsecase.GetPost(r.Context(), postID)
	if err != nil {
		if err == usecase.ErrPostNotFound {
			response.NotFound(w, "Post not found")
			return
		}
		response.InternalServerError(w, "Failed to get post")
		return
	}

	response.Success(w, http.StatusOK, "Post retrieved successfully", post)
}

func (h *PostHandler) GetPostsByUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	posts, err := h.postUsecase.GetPostsByUser(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get posts")
		return
	}

	response.Success(w, http.StatusOK, "Posts retrieved successfully", posts)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
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

	var req dto.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	post, err := h.postUsecase.UpdatePost(r.Context(), userID, postID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case usecase.ErrPostNotOwned:
			response.Forbidden(w, "You can only edit your own posts")
		default:
			response.InternalServerError(w, "Failed to update post")
		}
		return
	}

	response.Success(w, http.StatusOK, "Post updated successfully", post)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.postUsecase.DeletePost(r.Context(), userID, postID)
	if err != nil {
		switch err {
		case usecase.ErrPostNotFound:
			response.NotFound(w, "Post not found")
		case usecase.ErrPostNotOwned:
			response.Forbidden(w, "You can only delete your own posts")
		default:
			response.InternalServerError(w, "Failed to delete post")
		}
		return
	}

	response.Success(w, http.StatusOK, "Post deleted successfully", post)
}
