package repository

import (
	"Inkstone/internal/model"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// newTestDB 内存 SQLite，单连接避免每个连接各自一份内存库
func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.Notification{},
	)
	assert.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	user := &model.User{
		Username:     username,
		EmailAddress: username + "@test.local",
		Password:     "hash",
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}
