package repository

import (
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUnfollowRemovesNotification 取关后被关注者的关注通知不再悬挂
func TestUnfollowRemovesNotification(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	follow := &model.Follow{FollowerID: alice.ID, FollowedID: bob.ID}
	assert.NoError(t, repo.CreateFollowWithNotification(ctx, follow))

	var count int64
	err := db.Model(&model.Notification{}).
		Where("notifiable_type = ? AND notifiable_id = ?", model.NotifiableFollow, follow.ID).
		Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, repo.DeleteFollow(ctx, alice.ID, bob.ID))

	err = db.Model(&model.Notification{}).
		Where("notifiable_type = ? AND notifiable_id = ?", model.NotifiableFollow, follow.ID).
		Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	got, err := repo.GetFollow(ctx, alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// TestUnfollowMissingIsNoop 不存在的关注关系取关静默成功
func TestUnfollowMissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepository(db)

	assert.NoError(t, repo.DeleteFollow(context.Background(), 1, 2))
}
