package usecase

import (
	"io"
	"testing"

	"nightingale/internal/domain/entity"
	"nightingale/internal/infrastructure/database"
	"nightingale/internal/repository"
	"nightingale/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	log   *logrus.Logger
	audit service.AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteConnection("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &testEnv{
		db:    db,
		log:   log,
		audit: service.NewAuditService(log, repository.NewAuditLogRepository()),
	}
}

func (e *testEnv) seedUser(t *testing.T, username string) *entity.User {
	t.Helper()
	user := &entity.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, repository.NewUserRepository().Create(e.db, user))
	return user
}

func (e *testEnv) seedPost(t *testing.T, author *entity.User, body string) *entity.Post {
	t.Helper()
	post := &entity.Post{UserID: author.ID, Body: body}
	require.NoError(t, repository.NewPostRepository().Create(e.db, post))
	return post
}

func (e *testEnv) seedHospital(t *testing.T, name string) *entity.Hospital {
	t.Helper()
	hospital := &entity.Hospital{Name: name, Street: "1 Main St", City: "Boston", State: "MA"}
	require.NoError(t, repository.NewHospitalRepository().Create(e.db, hospital))
	return hospital
}

func (e *testEnv) auditActions(t *testing.T, userID uuid.UUID) []string {
	t.Helper()
	logs, err := repository.NewAuditLogRepository().FindByUserID(e.db, userID, 100)
	require.NoError(t, err)
	actions := make([]string, len(logs))
	for i, l := range logs {
		actions[i] = l.Action
	}
	return actions
}
