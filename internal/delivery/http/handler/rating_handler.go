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

type RatingHandler struct {
	ratingUsecase usecase.RatingUsecase
	validator     *validator.CustomValidator
}

func NewRatingHandler(ratingUsecase usecase.RatingUsecase, validator *validator.CustomValidator) *RatingHandler {
	return &RatingHandler{
		ratingUsecase: ratingUsecase,
		validator:     validator,
	}
}

func (h *RatingHandler) GetHospitalRatings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hospitalID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital ID", nil)
		return
	}

	ratings, err := h.ratingUsecase.GetHospitalRatings(r.Context(), hospitalID)
	if err != nil {
		if err == usecase.ErrHospitalNotFound {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to get ratings")
		return
	}

	response.Success(w, http.StatusOK, "Ratings retrieved successfully", ratings)
}

func (h *RatingHandler) CreateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	hospitalID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital ID", nil)
		return
	}

	var req dto.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rating, err := h.ratingUsecase.CreateRating(r.Context(), userID, hospitalID, &req)
	if err != nil {
		switch err {
		case usecase.ErrHospitalNotFound:
			response.NotFound(w, "Hospital not found")
		case usecase.ErrRatingOutOfRange:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create rating")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Rating created successfully", rating)
}

func (h *RatingHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	ratingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rating ID", nil)
		return
	}

	var req dto.UpdateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rating, err := h.ratingUsecase.UpdateRating(r.Context(), userID, ratingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRatingNotFound:
			response.NotFound(w, "Rating not found")
		case usecase.ErrRatingNotOwned:
			response.Forbidden(w, "You can only edit your own ratings")
		case usecase.ErrRatingOutOfRange:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update rating")
		}
		return
	}

	response.Success(w, http.StatusOK, "Rating updated successfully", rating)
}

func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	ratingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rating ID", nil)
		return
	}

	rating, err := h.ratingUsecase.DeleteRating(r.Context(), userID, ratingID)
	if err != nil {
		switch err {
		case usecase.ErrRatingNotFound:
			response.NotFound(w, "Rating not found")
		case usecase.ErrRatingNotOwned:
			response.Forbidden(w, "You can only delete your own ratings")
		default:
			response.InternalServerError(w, "Failed to delete rating")
		}
		return
	}

	response.Success(w, http.StatusOK, "Rating deleted successfully", rating)
}
