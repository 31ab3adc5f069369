package repository

import (
	"nightingale/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(db *gorm.DB, post *entity.Post) error
	FindAll(db *gorm.DB) ([]entity.Post, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Post, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Post, error)
	Update(db *gorm.DB, post *entity.Post) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type CommentRepository interface {
	Create(db *gorm.DB, comment *entity.Comment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Comment, error)
	FindByPostID(db *gorm.DB, postID uuid.UUID) ([]entity.Comment, error)
	CountByPostID(db *gorm.DB, postID uuid.UUID) (int64, error)
	Update(db *gorm.DB, comment *entity.Comment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
