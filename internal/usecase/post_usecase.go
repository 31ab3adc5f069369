package usecase

import (
	"context"
	"errors"

	"nightingale/internal/converter"
	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
	"nightingale/internal/domain/repository"
	"nightingale/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrPostNotOwned = errors.New("post does not belong to you")
)

const enrichConcurrency = 8

type PostUsecase interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetAllPosts(ctx context.Context) (*dto.PostListResponse, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error)
	GetPostsByUser(ctx context.Context, userID uuid.UUID) (*dto.PostListResponse, error)
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) (*dto.PostResponse, error)
}

type postUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
	auditService service.AuditService
}

func NewPostUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
	auditService service.AuditService,
) PostUsecase {
	return &postUsecase{
		db:           db,
		log:          log,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		auditService: auditService,
	}
}

func (u *postUsecase) CreatePost(ctx context.Context, userID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	post := &entity.Post{
		UserID: userID,
		Body:   req.Body,
	}
	if err := u.postRepo.Create(tx, post); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create post: %+v", err)
		return nil, err
	}

	created, err := u.postRepo.FindByID(tx, post.ID)
	if err != nil {
		u.log.Warnf("Failed to reload post: %+v", err)
		return nil, err
	}
	if created != nil {
		post = created
	}

	u.auditService.Record(tx, service.AuditEntry{
		ActorID:  &userID,
		Action:   entity.AuditActionPostCreate,
		Entity:   "post",
		EntityID: post.ID.String(),
		After:    converter.PostToResponse(post),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PostToResponse(post), nil
}

func (u *postUsecase) GetAllPosts(ctx context.Context) (*dto.PostListResponse, error) {
	posts, err := u.postRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all posts: %+v", err)
		return nil, err
	}

	responses, err := u.withCountsAll(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Posts: responses,
		Total: len(responses),
	}, nil
}

func (u *postUsecase) GetPost(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error) {
	db := u.db.WithContext(ctx)

	post, err := u.postRepo.FindByID(db, postID)
	if err != nil {
		u.log.Warnf("Failed to find post: %+v", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	response, err := u.withCounts(db, post)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (u *postUsecase) GetPostsByUser(ctx context.Context, userID uuid.UUID) (*dto.PostListResponse, error) {
	posts, err := u.postRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find posts by user: %+v", err)
		return nil, err
	}

	responses, err := u.withCountsAll(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResponse{
		Posts: responses,
		Total: len(responses),
	}, nil
}

func (u *postUsecase) UpdatePost(ctx context.Context, userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
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
	if post.UserID != userID {
		return nil, ErrPostNotOwned
	}

	oldValue := converter.PostToResponse(post)
	post.Body = req.Body

	if err := u.postRepo.Update(tx, post); err != nil {
		u.log.Warnf("Failed to update post: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, service.AuditEntry{
		ActorID:  &userID,
		Action:   entity.AuditActionPostUpdate,
		Entity:   "post",
		EntityID: post.ID.String(),
		Before:   oldValue,
		After:    converter.PostToResponse(post),
	})

	response, err := u.withCounts(tx, post)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &response, nil
}

// DeletePost returns the removed post as it was before deletion.
func (u *postUsecase) DeletePost(ctx context.Context, userID, postID uuid.UUID) (*dto.PostResponse, error) {
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
	if post.UserID != userID {
		return nil, ErrPostNotOwned
	}

	response, err := u.withCounts(tx, post)
	if err != nil {
		return nil, err
	}

	affected, err := u.postRepo.Delete(tx, postID)
	if err != nil {
		u.log.Warnf("Failed delete post: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPostNotFound
	}

	u.auditService.Record(tx, service.AuditEntry{
		ActorID:  &userID,
		Action:   entity.AuditActionPostDelete,
		Entity:   "post",
		EntityID: postID.String(),
		Before:   response,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &response, nil
}

// withCounts attaches like, dislike and comment counts to a post.
func (u *postUsecase) withCounts(db *gorm.DB, post *entity.Post) (dto.PostResponse, error) {
	response := *converter.PostToResponse(post)

	reactions, err := u.reactionRepo.CountByPostID(db, post.ID)
	if err != nil {
		u.log.Warnf("Failed to count reactions: %+v", err)
		return response, err
	}
	comments, err := u.commentRepo.CountByPostID(db, post.ID)
	if err != nil {
		u.log.Warnf("Failed to count comments: %+v", err)
		return response, err
	}

	response.Likes = reactions.Likes
	response.Dislikes = reactions.Dislikes
	response.Comments = comments
	return response, nil
}

func (u *postUsecase) withCountsAll(ctx context.Context, posts []entity.Post) ([]dto.PostResponse, error) {
	mapper := iter.Mapper[entity.Post, dto.PostResponse]{MaxGoroutines: enrichConcurrency}
	return mapper.MapErr(posts, func(post *entity.Post) (dto.PostResponse, error) {
		return u.withCounts(u.db.WithContext(ctx), post)
	})
}
