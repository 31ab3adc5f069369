package database

import (
	"testing"

	"nightingale/config"
	"nightingale/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	db, err := Open(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, "test")
	require.NoError(t, err)

	for _, table := range []string{"users", "hospitals", "posts", "comments", "reactions", "ratings", "reviews", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&entity.Reaction{}, "idx_reactions_user_post"))
}

func TestReactionUniqueIndexIsTranslated(t *testing.T) {
	db, err := NewSQLiteConnection("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)

	userID, postID := uuid.New(), uuid.New()
	require.NoError(t, db.Create(&entity.Reaction{UserID: userID, PostID: postID, Kind: entity.ReactionLike}).Error)

	err = db.Create(&entity.Reaction{UserID: userID, PostID: postID, Kind: entity.ReactionDislike}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DBConfig{Driver: "mysql"}, "test")
	assert.Error(t, err)
}
