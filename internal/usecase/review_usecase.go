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
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewNotOwned = errors.New("review does not belong to you")
)

type ReviewUsecase interface {
	GetAllReviews(ctx context.Context) (*dto.ReviewListResponse, error)
	GetHospitalReviews(ctx context.Context, hospitalID uuid.UUID) (*dto.ReviewListResponse, error)
	CreateReview(ctx context.Context, userID, hospitalID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) (*dto.ReviewResponse, error)
}

type reviewUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	reviewRepo   repository.ReviewRepository
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	reviewRepo repository.ReviewRepository,
) ReviewUsecase {
	return &reviewUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		reviewRepo:   reviewRepo,
	}
}

func (u *reviewUsecase) GetAllReviews(ctx context.Context) (*dto.ReviewListResponse, error) {
	reviews, err := u.reviewRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all reviews: %+v", err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

func (u *reviewUsecase) GetHospitalReviews(ctx context.Context, hospitalID uuid.UUID) (*dto.ReviewListResponse, error) {
	db := u.db.WithContext(ctx)

	hospital, err := u.hospitalRepo.FindByID(db, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	reviews, err := u.reviewRepo.FindByHospitalID(db, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find reviews: %+v", err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

func (u *reviewUsecase) CreateReview(ctx context.Context, userID, hospitalID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
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

	review := &entity.Review{
		UserID:     userID,
		HospitalID: hospitalID,
		Body:       req.Body,
	}
	if err := u.reviewRepo.Create(tx, review); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrHospitalNotFound
		}
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	created, err := u.reviewRepo.FindByID(tx, review.ID)
	if err != nil {
		u.log.Warnf("Failed to reload review: %+v", err)
		return nil, err
	}
	if created != nil {
		review = created
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review, err := u.findOwned(tx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Body = req.Body
	if err := u.reviewRepo.Update(tx, review); err != nil {
		u.log.Warnf("Failed to update review: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) (*dto.ReviewResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	review, err := u.findOwned(tx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	affected, err := u.reviewRepo.Delete(tx, reviewID)
	if err != nil {
		u.log.Warnf("Failed delete review: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrReviewNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) findOwned(tx *gorm.DB, userID, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := u.reviewRepo.FindByID(tx, reviewID)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, ErrReviewNotOwned
	}
	return review, nil
}
