package usecase

import (
	"context"
	"testing"

	"nightingale/internal/delivery/dto"
	"nightingale/internal/domain/entity"
	"nightingale/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostUsecase(env *testEnv) PostUsecase {
	return NewPostUsecase(env.db, env.log,
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewReactionRepository(),
		env.audit,
	)
}

func TestPostCreateAndGetWithCounts(t *testing.T) {
	env := newTestEnv(t)
	posts := newPostUsecase(env)
	reactions := newReactionUsecase(env)
	ctx := context.Background()

	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	created, err := posts.CreatePost(ctx, alice.ID, &dto.CreatePostRequest{Body: "first post"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, int64(0), created.Likes)

	_, err = reactions.React(ctx, bob.ID, created.ID, entity.ReactionLike)
	require.NoError(t, err)
	_, err = reactions.React(ctx, alice.ID, created.ID, entity.ReactionDislike)
	require.NoError(t, err)
	require.NoError(t, repository.NewCommentRepository().Create(env.db, &entity.Comment{
		UserID: bob.ID, PostID: created.ID, Body: "nice",
	}))

	got, err := posts.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)
	assert.Equal(t, int64(1), got.Dislikes)
	assert.Equal(t, int64(1), got.Comments)

	_, err = posts.GetPost(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.Contains(t, env.auditActions(t, alice.ID), entity.AuditActionPostCreate)
}

func TestPostListsCarryCounts(t *testing.T) {
	env := newTestEnv(t)
	posts := newPostUsecase(env)
	reactions := newReactionUsecase(env)
	ctx := context.Background()

	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	first := env.seedPost(t, alice, "one")
	env.seedPost(t, alice, "two")
	env.seedPost(t, bob, "three")

	_, err := reactions.React(ctx, bob.ID, first.ID, entity.ReactionLike)
	require.NoError(t, err)

	all, err := posts.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	var likes int64
	for _, p := range all.Posts {
		likes += p.Likes
		if p.ID == first.ID {
			assert.Equal(t, int64(1), p.Likes)
		}
	}
	assert.Equal(t, int64(1), likes)

	mine, err := posts.GetPostsByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Total)
	for _, p := range mine.Posts {
		assert.Equal(t, alice.ID, p.UserID)
	}

	none, err := posts.GetPostsByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Posts)
}

func TestPostUpdateAndDeleteOwnership(t *testing.T) {
	env := newTestEnv(t)
	posts := newPostUsecase(env)
	ctx := context.Background()

	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	post := env.seedPost(t, alice, "draft")

	_, err := posts.UpdatePost(ctx, bob.ID, post.ID, &dto.UpdatePostRequest{Body: "hijack"})
	assert.ErrorIs(t, err, ErrPostNotOwned)

	updated, err := posts.UpdatePost(ctx, alice.ID, post.ID, &dto.UpdatePostRequest{Body: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Body)

	_, err = posts.DeletePost(ctx, bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrPostNotOwned)

	deleted, err := posts.DeletePost(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)
	assert.Equal(t, "final", deleted.Body)

	_, err = posts.DeletePost(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = posts.UpdatePost(ctx, alice.ID, uuid.New(), &dto.UpdatePostRequest{Body: "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	actions := env.auditActions(t, alice.ID)
	assert.Contains(t, actions, entity.AuditActionPostUpdate)
	assert.Contains(t, actions, entity.AuditActionPostDelete)
}
