package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type HospitalRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Street string `json:"street" validate:"required,max=255"`
	City   string `json:"city" validate:"required,max=100"`
	State  string `json:"state" validate:"required,max=50"`
}

type HospitalListQuery struct {
	Name  string `validate:"omitempty,max=255"`
	City  string `validate:"omitempty,max=100"`
	State string `validate:"omitempty,max=50"`
}

type CreateReviewRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type UpdateReviewRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type CreateRatingRequest struct {
	RatingValue int `json:"rating_value" validate:"required,gte=1,lte=5"`
}

type UpdateRatingRequest struct {
	RatingValue int `json:"rating_value" validate:"required,gte=1,lte=5"`
}

// DirectorySearchQuery selects one search strategy: name, then zip, then
// city/state.
type DirectorySearchQuery struct {
	Name  string `validate:"omitempty,max=255"`
	City  string `validate:"omitempty,max=100"`
	State string `validate:"omitempty,max=50"`
	Zip   string `validate:"omitempty,numeric,min=3,max=10"`
	Limit int    `validate:"omitempty,gte=1,lte=1000"`
}

// Response DTOs

type HospitalResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Street        string    `json:"street"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	AverageRating *string   `json:"average_rating,omitempty"`
	TotalRatings  *int64    `json:"total_ratings,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	HospitalID uuid.UUID `json:"hospital_id"`
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}

type RatingResponse struct {
	ID          uuid.UUID `json:"id"`
	HospitalID  uuid.UUID `json:"hospital_id"`
	UserID      uuid.UUID `json:"user_id"`
	RatingValue int       `json:"rating_value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RatingListResponse struct {
	Ratings       []RatingResponse `json:"ratings"`
	AverageRating string           `json:"average_rating"`
	TotalRatings  int64            `json:"total_ratings"`
}
