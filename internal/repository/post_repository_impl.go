package repository

import (
	"errors"

	"nightingale/internal/domain/entity"
	domainRepo "nightingale/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postRepository struct{}

func NewPostRepository() domainRepo.PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(db *gorm.DB, post *entity.Post) error {
	return db.Omit("User").Create(post).Error
}

func (r *postRepository) FindAll(db *gorm.DB) ([]entity.Post, error) {
	var posts []entity.Post
	err := db.Preload("User").Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	err := db.Preload("User").Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Post, error) {
	var posts []entity.Post
	err := db.Preload("User").Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(db *gorm.DB, post *entity.Post) error {
	return db.Omit("User").Save(post).Error
}

func (r *postRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Post{})
	return result.RowsAffected, result.Error
}
