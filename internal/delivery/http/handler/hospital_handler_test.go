package handler

import (
	"fmt"
	"net/http"
	"testing"

	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
	"nightingale/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHospitalHandler(t *testing.T) {
	hospitalID := uuid.New()
	target := "/hospitals/" + hospitalID.String()
	avg := "4.50"
	total := int64(2)

	uc := new(mockHospitalUsecase)
	h := NewHospitalHandler(uc, newTestValidator())

	uc.On("GetAllHospitals", mock.Anything, &dto.HospitalListQuery{City: "Chicago", State: "IL"}).
		Return(&dto.HospitalListResponse{Hospitals: []dto.HospitalResponse{{Name: "County Memorial Hospital"}}, Total: 1}, nil)
	uc.On("GetHospital", mock.Anything, hospitalID).Return(&dto.HospitalResponse{ID: hospitalID, AverageRating: &avg, TotalRatings: &total}, nil)
	uc.On("GetHospital", mock.Anything, mock.Anything).Return(nil, usecase.ErrHospitalNotFound)
	uc.On("CreateHospital", mock.Anything, mock.Anything).Return(&dto.HospitalResponse{ID: hospitalID}, nil)
	uc.On("DeleteHospital", mock.Anything, hospitalID).Return(&dto.HospitalResponse{ID: hospitalID}, nil)

	rec := serve("/hospitals", h.GetAllHospitals, http.MethodGet, "/hospitals?city=Chicago&state=IL", "", uuid.Nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve("/hospitals/{id}", h.GetHospital, http.MethodGet, target, "", uuid.Nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"average_rating":"4.50"`)

	rec = serve("/hospitals/{id}", h.GetHospital, http.MethodGet, "/hospitals/"+uuid.NewString(), "", uuid.Nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve("/hospitals", h.CreateHospital, http.MethodPost, "/hospitals",
		`{"name":"City General Hospital","street":"123 Main Street","city":"New York","state":"NY"}`, uuid.Nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve("/hospitals", h.CreateHospital, http.MethodPost, "/hospitals", `{"name":"Missing fields"}`, uuid.Nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, "Street")

	rec = serve("/hospitals/{id}", h.DeleteHospital, http.MethodDelete, target, "", uuid.Nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	uc.AssertNumberOfCalls(t, "CreateHospital", 1)
}

func TestRatingHandler(t *testing.T) {
	userID := uuid.New()
	hospitalID := uuid.New()
	ratingID := uuid.New()

	uc := new(mockRatingUsecase)
	h := NewRatingHandler(uc, newTestValidator())

	uc.On("GetHospitalRatings", mock.Anything, hospitalID).
		Return(&dto.RatingListResponse{Ratings: []dto.RatingResponse{}, AverageRating: "0.00"}, nil)
	uc.On("CreateRating", mock.Anything, userID, hospitalID, &dto.CreateRatingRequest{RatingValue: 5}).
		Return(&dto.RatingResponse{ID: ratingID, RatingValue: 5}, nil)
	uc.On("UpdateRating", mock.Anything, userID, ratingID, mock.Anything).Return(nil, usecase.ErrRatingNotOwned)
	uc.On("DeleteRating", mock.Anything, userID, ratingID).Return(nil, usecase.ErrRatingNotFound)

	rec := serve("/hospitals/{id}/ratings", h.GetHospitalRatings, http.MethodGet, "/hospitals/"+hospitalID.String()+"/ratings", "", uuid.Nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"average_rating":"0.00"`)

	createTarget := "/hospitals/" + hospitalID.String() + "/ratings"
	rec = serve("/hospitals/{id}/ratings", h.CreateRating, http.MethodPost, createTarget, `{"rating_value":5}`, userID)
	assert.Equal(t, http.StatusCreated, rec.Code)

	for _, value := range []int{0, 6} {
		rec = serve("/hospitals/{id}/ratings", h.CreateRating, http.MethodPost, createTarget, fmt.Sprintf(`{"rating_value":%d}`, value), userID)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", value)
	}
	uc.AssertNumberOfCalls(t, "CreateRating", 1)

	rec = serve("/ratings/{id}", h.UpdateRating, http.MethodPut, "/ratings/"+ratingID.String(), `{"rating_value":3}`, userID)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve("/ratings/{id}", h.DeleteRating, http.MethodDelete, "/ratings/"+ratingID.String(), "", userID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewHandler(t *testing.T) {
	userID := uuid.New()
	hospitalID := uuid.New()
	reviewID := uuid.New()

	uc := new(mockReviewUsecase)
	h := NewReviewHandler(uc, newTestValidator())

	uc.On("GetAllReviews", mock.Anything).Return(&dto.ReviewListResponse{Reviews: []dto.ReviewResponse{}}, nil)
	uc.On("GetHospitalReviews", mock.Anything, hospitalID).Return(nil, usecase.ErrHospitalNotFound)
	uc.On("CreateReview", mock.Anything, userID, hospitalID, &dto.CreateReviewRequest{Body: "Great unit"}).
		Return(&dto.ReviewResponse{ID: reviewID, Body: "Great unit"}, nil)
	uc.On("UpdateReview", mock.Anything, userID, reviewID, mock.Anything).Return(&dto.ReviewResponse{ID: reviewID, Body: "Edited"}, nil)
	uc.On("DeleteReview", mock.Anything, userID, reviewID).Return(nil, usecase.ErrReviewNotOwned)

	rec := serve("/reviews", h.GetAllReviews, http.MethodGet, "/reviews", "", uuid.Nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve("/hospitals/{id}/reviews", h.GetHospitalReviews, http.MethodGet, "/hospitals/"+hospitalID.String()+"/reviews", "", uuid.Nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve("/hospitals/{id}/reviews", h.CreateReview, http.MethodPost, "/hospitals/"+hospitalID.String()+"/reviews", `{"body":"Great unit"}`, userID)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve("/reviews/{id}", h.UpdateReview, http.MethodPut, "/reviews/"+reviewID.String(), `{"body":"Edited"}`, userID)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve("/reviews/{id}", h.DeleteReview, http.MethodDelete, "/reviews/"+reviewID.String(), "", userID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDirectoryHandler_Search(t *testing.T) {
	found := []entity.DirectoryHospital{{CMSID: "140010", Name: "NORTHWESTERN MEMORIAL HOSPITAL", City: "CHICAGO", State: "IL"}}

	t.Run("returns matches with meta", func(t *testing.T) {
		uc := new(mockDirectoryUsecase)
		h := NewDirectoryHandler(uc, newTestValidator())
		uc.On("Search", mock.Anything, &dto.DirectorySearchQuery{City: "Chicago", State: "IL", Limit: 5}).Return(found, nil)

		rec := serve("/hospitals/search", h.Search, http.MethodGet, "/hospitals/search?city=Chicago&state=IL&limit=5", "", uuid.Nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, string(env.Data), `"cms_id":"140010"`)
		if assert.NotNil(t, env.Meta) {
			assert.Equal(t, 1, env.Meta.Total)
			assert.Equal(t, 5, env.Meta.Limit)
		}
	})

	t.Run("rejects malformed query", func(t *testing.T) {
		uc := new(mockDirectoryUsecase)
		h := NewDirectoryHandler(uc, newTestValidator())

		rec := serve("/hospitals/search", h.Search, http.MethodGet, "/hospitals/search?city=Chicago&limit=ten", "", uuid.Nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve("/hospitals/search", h.Search, http.MethodGet, "/hospitals/search?zip=6061a", "", uuid.Nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		uc.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("maps usecase errors", func(t *testing.T) {
		uc := new(mockDirectoryUsecase)
		h := NewDirectoryHandler(uc, newTestValidator())
		uc.On("Search", mock.Anything, &dto.DirectorySearchQuery{}).Return(nil, usecase.ErrSearchCriteriaMissing)
		uc.On("Search", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: %w", usecase.ErrDirectoryUnavailable, fmt.Errorf("upstream status 503")))

		rec := serve("/hospitals/search", h.Search, http.MethodGet, "/hospitals/search", "", uuid.Nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve("/hospitals/search", h.Search, http.MethodGet, "/hospitals/search?name=mercy", "", uuid.Nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestDirectoryHandler_GetFacility(t *testing.T) {
	uc := new(mockDirectoryUsecase)
	h := NewDirectoryHandler(uc, newTestValidator())

	uc.On("GetFacility", mock.Anything, "140010").Return(&entity.DirectoryHospital{CMSID: "140010"}, nil)
	uc.On("GetFacility", mock.Anything, "000000").Return(nil, usecase.ErrFacilityNotFound)
	uc.On("GetFacility", mock.Anything, "999999").Return(nil, fmt.Errorf("%w: timeout", usecase.ErrDirectoryUnavailable))

	rec := serve("/hospitals/directory/{facilityId}", h.GetFacility, http.MethodGet, "/hospitals/directory/140010", "", uuid.Nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve("/hospitals/directory/{facilityId}", h.GetFacility, http.MethodGet, "/hospitals/directory/000000", "", uuid.Nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve("/hospitals/directory/{facilityId}", h.GetFacility, http.MethodGet, "/hospitals/directory/999999", "", uuid.Nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
