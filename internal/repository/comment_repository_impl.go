package repository

import (
	"errors"

	"nightingale/internal/domain/entity"
	domainRepo "nightingale/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commentRepository struct{}

func NewCommentRepository() domainRepo.CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(db *gorm.DB, comment *entity.Comment) error {
	return db.Omit("User", "Post").Create(comment).Error
}

func (r *commentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	err := db.Preload("User").Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// FindByPostID returns comments oldest first.
func (r *commentRepository) FindByPostID(db *gorm.DB, postID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) CountByPostID(db *gorm.DB, postID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *commentRepository) Update(db *gorm.DB, comment *entity.Comment) error {
	return db.Omit("User", "Post").Save(comment).Error
}

func (r *commentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Comment{})
	return result.RowsAffected, result.Error
}
