package repository

import (
	"errors"

	"nightingale/internal/domain/entity"
	domainRepo "nightingale/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ratingRepository struct{}

func NewRatingRepository() domainRepo.RatingRepository {
	return &ratingRepository{}
}

func (r *ratingRepository) Create(db *gorm.DB, rating *entity.Rating) error {
	return db.Omit("User", "Hospital").Create(rating).Error
}

func (r *ratingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Rating, error) {
	var rating entity.Rating
	err := db.Where("id = ?", id).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByHospitalID(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := db.Where("hospital_id = ?", hospitalID).Order("created_at DESC").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// AverageForHospital returns a zero average when the hospital has no ratings.
func (r *ratingRepository) AverageForHospital(db *gorm.DB, hospitalID uuid.UUID) (entity.RatingSummary, error) {
	var row struct {
		Average decimal.NullDecimal
		Total   int64
	}
	err := db.Model(&entity.Rating{}).
		Select("AVG(rating_value) AS average, COUNT(*) AS total").
		Where("hospital_id = ?", hospitalID).
		Scan(&row).Error
	if err != nil {
		return entity.RatingSummary{}, err
	}

	summary := entity.RatingSummary{Average: decimal.Zero, Total: row.Total}
	if row.Average.Valid {
		summary.Average = row.Average.Decimal.Round(2)
	}
	return summary, nil
}

func (r *ratingRepository) Update(db *gorm.DB, rating *entity.Rating) error {
	return db.Omit("User", "Hospital").Save(rating).Error
}

func (r *ratingRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Rating{})
	return result.RowsAffected, result.Error
}
