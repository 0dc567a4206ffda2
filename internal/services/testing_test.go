package services

import (
	"context"
	"testing"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/database"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepositories(t *testing.T) repository.Repositories {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return repository.NewGormRepositories(db)
}

func createUser(t *testing.T, repos repository.Repositories, name, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Role: role}
	_, err := repos.Users.Upsert(context.Background(), user)
	require.NoError(t, err)
	return user
}

func coinsOf(t *testing.T, repos repository.Repositories, email string) int64 {
	t.Helper()
	user, err := repos.Users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return user.Coins
}

var paginationAll = utils.PaginationParams{}
