package converter

import (
	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
)

func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}

	return &dto.HospitalResponse{
		ID:        hospital.ID,
		Name:      hospital.Name,
		Street:    hospital.Street,
		City:      hospital.City,
		State:     hospital.State,
		CreatedAt: hospital.CreatedAt,
		UpdatedAt: hospital.UpdatedAt,
	}
}

// HospitalWithSummaryToResponse adds the rating aggregate to the hospital.
func HospitalWithSummaryToResponse(hospital *entity.Hospital, summary entity.RatingSummary) *dto.HospitalResponse {
	response := HospitalToResponse(hospital)
	if response == nil {
		return nil
	}
	average := summary.Average.StringFixed(2)
	total := summary.Total
	response.AverageRating = &average
	response.TotalRatings = &total
	return response
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = *HospitalToResponse(&hospitals[i])
	}
	return responses
}

func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	response := &dto.ReviewResponse{
		ID:         review.ID,
		HospitalID: review.HospitalID,
		UserID:     review.UserID,
		Body:       review.Body,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
	if review.User != nil {
		response.Username = review.User.Username
	}
	return response
}

func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i])
	}
	return responses
}

func RatingToResponse(rating *entity.Rating) *dto.RatingResponse {
	if rating == nil {
		return nil
	}

	return &dto.RatingResponse{
		ID:          rating.ID,
		HospitalID:  rating.HospitalID,
		UserID:      rating.UserID,
		RatingValue: rating.RatingValue,
		CreatedAt:   rating.CreatedAt,
		UpdatedAt:   rating.UpdatedAt,
	}
}

func RatingsToResponses(ratings []entity.Rating) []dto.RatingResponse {
	responses := make([]dto.RatingResponse, len(ratings))
	for i := range ratings {
		responses[i] = *RatingToResponse(&ratings[i])
	}
	return responses
}
