package repository

import (
	"testing"
	"time"

	"nightingale/internal/domain/entity"
	"nightingale/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := &entity.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, NewUserRepository().Create(db, user))
	return user
}

func seedPost(t *testing.T, db *gorm.DB, author *entity.User, body string) *entity.Post {
	t.Helper()
	post := &entity.Post{UserID: author.ID, Body: body}
	require.NoError(t, NewPostRepository().Create(db, post))
	return post
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository()

	user := seedUser(t, db, "john_doe")
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.FindByUsername(db, "john_doe")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.FindByUsername(db, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Create(db, &entity.User{Username: "john_doe", Email: "other@example.com", Password: "hash"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	found.Bio = "ICU nurse"
	require.NoError(t, repo.Update(db, found))
	reloaded, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ICU nurse", reloaded.Bio)
}

func TestHospitalRepositoryFilterAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewHospitalRepository()

	for _, h := range []entity.Hospital{
		{Name: "City General Hospital", Street: "123 Main Street", City: "New York", State: "NY"},
		{Name: "St. Mary's Medical Center", Street: "456 Oak Avenue", City: "Los Angeles", State: "CA"},
		{Name: "County Memorial Hospital", Street: "789 Elm Boulevard", City: "Chicago", State: "IL"},
	} {
		h := h
		require.NoError(t, repo.Create(db, &h))
	}

	all, err := repo.FindAll(db, entity.HospitalFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := repo.FindAll(db, entity.HospitalFilter{Name: "hospital"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byCity, err := repo.FindAll(db, entity.HospitalFilter{City: "new york"})
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, "City General Hospital", byCity[0].Name)

	byState, err := repo.FindAll(db, entity.HospitalFilter{State: "ca"})
	require.NoError(t, err)
	assert.Len(t, byState, 1)

	affected, err := repo.Delete(db, byCity[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(db, byCity[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	gone, err := repo.FindByID(db, byCity[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCommentRepositoryOrdersOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository()
	author := seedUser(t, db, "jane_smith")
	post := seedPost(t, db, author, "Night shift tips?")

	base := time.Now().Add(-time.Hour)
	for i, body := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(db, &entity.Comment{
			UserID:    author.ID,
			PostID:    post.ID,
			Body:      body,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	comments, err := repo.FindByPostID(db, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Body)
	assert.Equal(t, "third", comments[2].Body)
	require.NotNil(t, comments[0].User)
	assert.Equal(t, "jane_smith", comments[0].User.Username)

	count, err := repo.CountByPostID(db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestReactionRepositoryCountsAndUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository()
	author := seedUser(t, db, "author")
	post := seedPost(t, db, author, "hello")

	var users []*entity.User
	for _, name := range []string{"a", "b", "c"} {
		users = append(users, seedUser(t, db, name))
	}

	require.NoError(t, repo.Create(db, &entity.Reaction{UserID: users[0].ID, PostID: post.ID, Kind: entity.ReactionLike}))
	require.NoError(t, repo.Create(db, &entity.Reaction{UserID: users[1].ID, PostID: post.ID, Kind: entity.ReactionLike}))
	require.NoError(t, repo.Create(db, &entity.Reaction{UserID: users[2].ID, PostID: post.ID, Kind: entity.ReactionDislike}))

	counts, err := repo.CountByPostID(db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionCounts{Likes: 2, Dislikes: 1}, counts)

	err = repo.Create(db, &entity.Reaction{UserID: users[0].ID, PostID: post.ID, Kind: entity.ReactionDislike})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	existing, err := repo.FindByUserAndPost(db, users[0].ID, post.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, entity.ReactionLike, existing.Kind)

	affected, err := repo.Delete(db, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	missing, err := repo.FindByUserAndPost(db, users[0].ID, post.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := repo.CountByPostID(db, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionCounts{}, empty)
}

func TestRatingRepositoryAverage(t *testing.T) {
	db := newTestDB(t)
	repo := NewRatingRepository()
	user := seedUser(t, db, "rater")
	hospital := &entity.Hospital{Name: "City General Hospital", Street: "123 Main Street", City: "New York", State: "NY"}
	require.NoError(t, NewHospitalRepository().Create(db, hospital))

	summary, err := repo.AverageForHospital(db, hospital.ID)
	require.NoError(t, err)
	assert.True(t, summary.Average.Equal(decimal.Zero))
	assert.Equal(t, int64(0), summary.Total)

	for _, v := range []int{5, 4, 4} {
		require.NoError(t, repo.Create(db, &entity.Rating{UserID: user.ID, HospitalID: hospital.ID, RatingValue: v}))
	}

	summary, err = repo.AverageForHospital(db, hospital.ID)
	require.NoError(t, err)
	assert.Equal(t, "4.33", summary.Average.StringFixed(2))
	assert.Equal(t, int64(3), summary.Total)

	ratings, err := repo.FindByHospitalID(db, hospital.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 3)
}

func TestReviewRepositoryCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository()
	user := seedUser(t, db, "reviewer")
	hospital := &entity.Hospital{Name: "County Memorial Hospital", Street: "789 Elm Boulevard", City: "Chicago", State: "IL"}
	require.NoError(t, NewHospitalRepository().Create(db, hospital))

	review := &entity.Review{UserID: user.ID, HospitalID: hospital.ID, Body: "Supportive charge nurses."}
	require.NoError(t, repo.Create(db, review))

	found, err := repo.FindByID(db, review.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.User)
	assert.Equal(t, "reviewer", found.User.Username)

	found.Body = "Supportive charge nurses, tough parking."
	require.NoError(t, repo.Update(db, found))

	byHospital, err := repo.FindByHospitalID(db, hospital.ID)
	require.NoError(t, err)
	require.Len(t, byHospital, 1)
	assert.Equal(t, "Supportive charge nurses, tough parking.", byHospital[0].Body)

	all, err := repo.FindAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	affected, err := repo.Delete(db, review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestAuditLogRepositoryFindByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditLogRepository()
	user := seedUser(t, db, "audited")

	require.NoError(t, repo.Create(db, &entity.AuditLog{UserID: &user.ID, Action: entity.AuditActionUserLogin}))
	require.NoError(t, repo.Create(db, &entity.AuditLog{
		UserID:   &user.ID,
		Action:   entity.AuditActionPostCreate,
		Metadata: entity.JSON{"entity": "post"},
	}))

	logs, err := repo.FindByUserID(db, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditActionPostCreate, logs[0].Action)
	assert.Equal(t, "post", logs[0].Metadata["entity"])
}
