package usecase

import (
	"context"
	"errors"

	"nightingale/internal/converter"
	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
	"nightingale/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRatingNotFound   = errors.New("rating not found")
	ErrRatingNotOwned   = errors.New("rating does not belong to you")
	ErrRatingOutOfRange = errors.New("rating value must be between 1 and 5")
)

type RatingUsecase interface {
	GetHospitalRatings(ctx context.Context, hospitalID uuid.UUID) (*dto.RatingListResponse, error)
	CreateRating(ctx context.Context, userID, hospitalID uuid.UUID, req *dto.CreateRatingRequest) (*dto.RatingResponse, error)
	UpdateRating(ctx context.Context, userID, ratingID uuid.UUID, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error)
	DeleteRating(ctx context.Context, userID, ratingID uuid.UUID) (*dto.RatingResponse, error)
}

type ratingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	ratingRepo   repository.RatingRepository
}

func NewRatingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	ratingRepo repository.RatingRepository,
) RatingUsecase {
	return &ratingUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		ratingRepo:   ratingRepo,
	}
}

// GetHospitalRatings returns the ratings with their average rounded to two
// decimals. A hospital without ratings averages "0.00".
func (u *ratingUsecase) GetHospitalRatings(ctx context.Context, hospitalID uuid.UUID) (*dto.RatingListResponse, error) {
	db := u.db.WithContext(ctx)

	hospital, err := u.hospitalRepo.FindByID(db, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	ratings, err := u.ratingRepo.FindByHospitalID(db, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find ratings: %+v", err)
		return nil, err
	}

	summary, err := u.ratingRepo.AverageForHospital(db, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to average ratings: %+v", err)
		return nil, err
	}

	return &dto.RatingListResponse{
		Ratings:       converter.RatingsToResponses(ratings),
		AverageRating: summary.Average.StringFixed(2),
		TotalRatings:  summary.Total,
	}, nil
}

func (u *ratingUsecase) CreateRating(ctx context.Context, userID, hospitalID uuid.UUID, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if !validRating(req.RatingValue) {
		return nil, ErrRatingOutOfRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	rating := &entity.Rating{
		UserID:      userID,
		HospitalID:  hospitalID,
		RatingValue: req.RatingValue,
	}
	if err := u.ratingRepo.Create(tx, rating); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrHospitalNotFound
		}
		u.log.Warnf("Failed to create rating: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RatingToResponse(rating), nil
}

func (u *ratingUsecase) UpdateRating(ctx context.Context, userID, ratingID uuid.UUID, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error) {
	if !validRating(req.RatingValue) {
		return nil, ErrRatingOutOfRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rating, err := u.findOwned(tx, userID, ratingID)
	if err != nil {
		return nil, err
	}

	rating.RatingValue = req.RatingValue
	if err := u.ratingRepo.Update(tx, rating); err != nil {
		u.log.Warnf("Failed to update rating: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RatingToResponse(rating), nil
}

func (u *ratingUsecase) DeleteRating(ctx context.Context, userID, ratingID uuid.UUID) (*dto.RatingResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rating, err := u.findOwned(tx, userID, ratingID)
	if err != nil {
		return nil, err
	}

	affected, err := u.ratingRepo.Delete(tx, ratingID)
	if err != nil {
		u.log.Warnf("Failed delete rating: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRatingNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RatingToResponse(rating), nil
}

func (u *ratingUsecase) findOwned(tx *gorm.DB, userID, ratingID uuid.UUID) (*entity.Rating, error) {
	rating, err := u.ratingRepo.FindByID(tx, ratingID)
	if err != nil {
		u.log.Warnf("Failed to find rating: %+v", err)
		return nil, err
	}
	if rating == nil {
		return nil, ErrRatingNotFound
	}
	if rating.UserID != userID {
		return nil, ErrRatingNotOwned
	}
	return rating, nil
}

func validRating(value int) bool {
	return value >= entity.MinRatingValue && value <= entity.MaxRatingValue
}
