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
	ErrInvalidReactionKind = errors.New("invalid reaction kind")
	ErrAlreadyReacted      = errors.New("reaction already exists")
	ErrReactionNotFound    = errors.New("reaction not found")
	ErrReactionConflict    = errors.New("concurrent reaction on the same post")
)

// ReactionUsecase keeps at most one reaction, like or dislike, per user and
// post. Counts are always derived from the reactions table.
type ReactionUsecase interface {
	React(ctx context.Context, userID, postID uuid.UUID, kind entity.ReactionKind) (*dto.ReactionResultResponse, error)
	Unreact(ctx context.Context, userID, postID uuid.UUID, kind entity.ReactionKind) (*dto.ReactionResultResponse, error)
	CountsFor(ctx context.Context, postID uuid.UUID) (entity.ReactionCounts, error)
}

type reactionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
}

func NewReactionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
) ReactionUsecase {
	return &reactionUsecase{
		db:           db,
		log:          log,
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
	}
}

// React records kind for the pair, replacing an opposite-kind reaction.
// The lookup, replacement and recount share one transaction, and the
// (user_id, post_id) unique index rejects a concurrent duplicate insert.
func (u *reactionUsecase) React(ctx context.Context, userID, postID uuid.UUID, kind entity.ReactionKind) (*dto.ReactionResultResponse, error) {
	if !kind.Valid() {
		return nil, ErrInvalidReactionKind
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	post, err := u.postRepo.FindByID(tx, postID)
	if err != nil {
		u.log.Warnf("Failed to find post: %+v", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	existing, err := u.reactionRepo.FindByUserAndPost(tx, userID, postID)
	if err != nil {
		u.log.Warnf("Failed to find reaction: %+v", err)
		return nil, err
	}
	if existing != nil {
		if existing.Kind == kind {
			return nil, ErrAlreadyReacted
		}
		if _, err := u.reactionRepo.Delete(tx, existing.ID); err != nil {
			u.log.Warnf("Failed to remove %s reaction: %+v", existing.Kind, err)
			return nil, err
		}
	}

	reaction := &entity.Reaction{
		UserID: userID,
		PostID: postID,
		Kind:   kind,
	}
	if err := u.reactionRepo.Create(tx, reaction); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrReactionConflict
		}
		if isForeignKeyError(err) {
			return nil, ErrPostNotFound
		}
		u.log.Warnf("Failed to create reaction: %+v", err)
		return nil, err
	}

	counts, err := u.reactionRepo.CountByPostID(tx, postID)
	if err != nil {
		u.log.Warnf("Failed to count reactions: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrReactionConflict
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.ReactionResultResponse{
		Reaction: converter.ReactionToResponse(reaction),
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
	}, nil
}

func (u *reactionUsecase) Unreact(ctx context.Context, userID, postID uuid.UUID, kind entity.ReactionKind) (*dto.ReactionResultResponse, error) {
	if !kind.Valid() {
		return nil, ErrInvalidReactionKind
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.reactionRepo.FindByUserAndPost(tx, userID, postID)
	if err != nil {
		u.log.Warnf("Failed to find reaction: %+v", err)
		return nil, err
	}
	if existing == nil || existing.Kind != kind {
		return nil, ErrReactionNotFound
	}

	affected, err := u.reactionRepo.Delete(tx, existing.ID)
	if err != nil {
		u.log.Warnf("Failed to delete reaction: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrReactionNotFound
	}

	counts, err := u.reactionRepo.CountByPostID(tx, postID)
	if err != nil {
		u.log.Warnf("Failed to count reactions: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.ReactionResultResponse{
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
	}, nil
}

func (u *reactionUsecase) CountsFor(ctx context.Context, postID uuid.UUID) (entity.ReactionCounts, error) {
	counts, err := u.reactionRepo.CountByPostID(u.db.WithContext(ctx), postID)
	if err != nil {
		u.log.Warnf("Failed to count reactions: %+v", err)
		return entity.ReactionCounts{}, err
	}
	return counts, nil
}
