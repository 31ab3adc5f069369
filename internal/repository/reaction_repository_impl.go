package repository

import (
	"errors"

	"nightingale/internal/domain/entity"
	domainRepo "nightingale/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reactionRepository struct{}

func NewReactionRepository() domainRepo.ReactionRepository {
	return &reactionRepository{}
}

func (r *reactionRepository) Create(db *gorm.DB, reaction *entity.Reaction) error {
	return db.Omit("User", "Post").Create(reaction).Error
}

func (r *reactionRepository) FindByUserAndPost(db *gorm.DB, userID, postID uuid.UUID) (*entity.Reaction, error) {
	var reaction entity.Reaction
	err := db.Where("user_id = ? AND post_id = ?", userID, postID).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Reaction{})
	return result.RowsAffected, result.Error
}

// CountByPostID counts likes and dislikes in a single grouped query.
func (r *reactionRepository) CountByPostID(db *gorm.DB, postID uuid.UUID) (entity.ReactionCounts, error) {
	var rows []struct {
		Kind  entity.ReactionKind
		Total int64
	}
	err := db.Model(&entity.Reaction{}).
		Select("kind, COUNT(*) AS total").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return entity.ReactionCounts{}, err
	}

	var counts entity.ReactionCounts
	for _, row := range rows {
		switch row.Kind {
		case entity.ReactionLike:
			counts.Likes = row.Total
		case entity.ReactionDislike:
			counts.Dislikes = row.Total
		}
	}
	return counts, nil
}
