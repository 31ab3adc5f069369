package repository

import (
	"nightingale/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(db *gorm.DB, rating *entity.Rating) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Rating, error)
	FindByHospitalID(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Rating, error)
	AverageForHospital(db *gorm.DB, hospitalID uuid.UUID) (entity.RatingSummary, error)
	Update(db *gorm.DB, rating *entity.Rating) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindAll(db *gorm.DB) ([]entity.Review, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Review, error)
	FindByHospitalID(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Review, error)
	Update(db *gorm.DB, review *entity.Review) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
