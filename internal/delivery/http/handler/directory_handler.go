package handler

import (
	"errors"
	"net/http"
	"strconv"

	"nightingale/internal/delivery/dto"
	"nightingale/internal/usecase"
	"nightingale/pkg/response"
	"nightingale/pkg/validator"

	"github.com/gorilla/mux"
)

type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
	validator        *validator.CustomValidator
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase, validator *validator.CustomValidator) *DirectoryHandler {
	return &DirectoryHandler{
		directoryUsecase: directoryUsecase,
		validator:        validator,
	}
}

// Search queries the CMS directory by name, zip, or city/state.
func (h *DirectoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.DirectorySearchQuery{
		Name:  query.Get("name"),
		City:  query.Get("city"),
		State: query.Get("state"),
		Zip:   query.Get("zip"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid limit")
			return
		}
		req.Limit = limit
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospitals, err := h.directoryUsecase.Search(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSearchCriteriaMissing):
			response.BadRequest(w, "Provide name, zip, city or state")
		case errors.Is(err, usecase.ErrDirectoryUnavailable):
			response.BadGateway(w, "Hospital directory is unavailable")
		default:
			response.InternalServerError(w, "Failed to search hospitals")
		}
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Hospitals retrieved successfully", hospitals, &response.Meta{
		Total: len(hospitals),
		Limit: req.Limit,
	})
}

func (h *DirectoryHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	hospital, err := h.directoryUsecase.GetFacility(r.Context(), vars["facilityId"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFacilityNotFound):
			response.NotFound(w, "Facility not found")
		case errors.Is(err, usecase.ErrDirectoryUnavailable):
			response.BadGateway(w, "Hospital directory is unavailable")
		default:
			response.InternalServerError(w, "Failed to get facility")
		}
		return
	}

	response.Success(w, http.StatusOK, "Facility retrieved successfully", hospital)
}
