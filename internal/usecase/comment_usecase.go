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
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentNotOwned = errors.New("comment does not belong to you")
)

type CommentUsecase interface {
	GetComments(ctx context.Context, postID uuid.UUID) (*dto.CommentListResponse, error)
	CreateComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error)
	UpdateComment(ctx context.Context, userID, postID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, postID, commentID uuid.UUID) (*dto.CommentMutationResponse, error)
}

type commentUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func NewCommentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) CommentUsecase {
	return &commentUsecase{
		db:          db,
		log:         log,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (u *commentUsecase) GetComments(ctx context.Context, postID uuid.UUID) (*dto.CommentListResponse, error) {
	db := u.db.WithContext(ctx)

	post, err := u.postRepo.FindByID(db, postID)
	if err != nil {
		u.log.Warnf("Failed to find post: %+v", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := u.commentRepo.FindByPostID(db, postID)
	if err != nil {
		u.log.Warnf("Failed to find comments: %+v", err)
		return nil, err
	}

	return &dto.CommentListResponse{
		Comments: converter.CommentsToResponses(comments),
		Total:    len(comments),
	}, nil
}

func (u *commentUsecase) CreateComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error) {
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

	comment := &entity.Comment{
		UserID: userID,
		PostID: postID,
		Body:   req.Body,
	}
	if err := u.commentRepo.Create(tx, comment); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrPostNotFound
		}
		u.log.Warnf("Failed to create comment: %+v", err)
		return nil, err
	}

	author, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find comment author: %+v", err)
		return nil, err
	}
	comment.User = author

	count, err := u.commentRepo.CountByPostID(tx, postID)
	if err != nil {
		u.log.Warnf("Failed to count comments: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.CommentMutationResponse{
		Comment:      converter.CommentToResponse(comment),
		CommentCount: count,
	}, nil
}

func (u *commentUsecase) UpdateComment(ctx context.Context, userID, postID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	comment, err := u.findOwned(tx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Body = req.Body
	if err := u.commentRepo.Update(tx, comment); err != nil {
		u.log.Warnf("Failed to update comment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CommentToResponse(comment), nil
}

// DeleteComment returns the removed comment and the post's remaining count.
func (u *commentUsecase) DeleteComment(ctx context.Context, userID, postID, commentID uuid.UUID) (*dto.CommentMutationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	comment, err := u.findOwned(tx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}

	affected, err := u.commentRepo.Delete(tx, commentID)
	if err != nil {
		u.log.Warnf("Failed delete comment: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCommentNotFound
	}

	count, err := u.commentRepo.CountByPostID(tx, postID)
	if err != nil {
		u.log.Warnf("Failed to count comments: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.CommentMutationResponse{
		Comment:      converter.CommentToResponse(comment),
		CommentCount: count,
	}, nil
}

// findOwned loads a comment of postID written by userID. A comment on a
// different post is reported as missing.
func (u *commentUsecase) findOwned(tx *gorm.DB, userID, postID, commentID uuid.UUID) (*entity.Comment, error) {
	post, err := u.postRepo.FindByID(tx, postID)
	if err != nil {
		u.log.Warnf("Failed to find post: %+v", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment, err := u.commentRepo.FindByID(tx, commentID)
	if err != nil {
		u.log.Warnf("Failed to find comment: %+v", err)
		return nil, err
	}
	if comment == nil || comment.PostID != postID {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrCommentNotOwned
	}
	return comment, nil
}
