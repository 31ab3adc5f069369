package repository

import (
	"nightingale/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionRepository interface {
	Create(db *gorm.DB, reaction *entity.Reaction) error
	FindByUserAndPost(db *gorm.DB, userID, postID uuid.UUID) (*entity.Reaction, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountByPostID(db *gorm.DB, postID uuid.UUID) (entity.ReactionCounts, error)
}
