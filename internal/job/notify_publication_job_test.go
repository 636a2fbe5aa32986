package job

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/taskqueue"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestNotifyFanOutExcludesAuthor 除作者外的每个用户各得一条通知
func TestNotifyFanOutExcludesAuthor(t *testing.T) {
	postRepo := new(MockPostRepo)
	userRepo := new(MockUserRepo)
	notificationRepo := new(MockNotificationRepo)
	j := NewNotifyPublicationJob(postRepo, userRepo, notificationRepo)

	// alice(1) 发帖，bob(2) 和 carol(3) 收到通知
	post := &model.Post{ID: 10, UserID: 1, Published: true}
	postRepo.On("GetPost", mock.Anything, uint64(10)).Return(post, nil)
	userRepo.On("ListUserIDsExcept", mock.Anything, uint64(1)).Return([]uint64{2, 3}, nil)
	notificationRepo.On("CreateNotifications", mock.Anything, mock.MatchedBy(func(ns []*model.Notification) bool {
		if len(ns) != 2 {
			return false
		}
		for _, n := range ns {
			if n.NotifiableType != model.NotifiablePost || n.NotifiableID != 10 {
				return false
			}
			if n.UserID == 1 {
				return false
			}
		}
		return ns[0].UserID == 2 && ns[1].UserID == 3
	})).Return(nil)

	err := j.Handle(context.Background(), taskqueue.Task{
		Kind: consts.TaskKindNotifyPublication, PostID: 10,
	})
	assert.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}

// TestNotifyMissingPostIsNoop 发布后又被删除的帖子不再通知
func TestNotifyMissingPostIsNoop(t *testing.T) {
	postRepo := new(MockPostRepo)
	userRepo := new(MockUserRepo)
	notificationRepo := new(MockNotificationRepo)
	j := NewNotifyPublicationJob(postRepo, userRepo, notificationRepo)

	postRepo.On("GetPost", mock.Anything, uint64(10)).Return(nil, nil)

	err := j.Handle(context.Background(), taskqueue.Task{
		Kind: consts.TaskKindNotifyPublication, PostID: 10,
	})
	assert.NoError(t, err)
	notificationRepo.AssertNotCalled(t, "CreateNotifications", mock.Anything, mock.Anything)
}

// TestNotifyNoOtherUsers 只有作者一个用户时不写任何通知
func TestNotifyNoOtherUsers(t *testing.T) {
	postRepo := new(MockPostRepo)
	userRepo := new(MockUserRepo)
	notificationRepo := new(MockNotificationRepo)
	j := NewNotifyPublicationJob(postRepo, userRepo, notificationRepo)

	post := &model.Post{ID: 10, UserID: 1, Published: true}
	postRepo.On("GetPost", mock.Anything, uint64(10)).Return(post, nil)
	userRepo.On("ListUserIDsExcept", mock.Anything, uint64(1)).Return([]uint64{}, nil)

	err := j.Handle(context.Background(), taskqueue.Task{
		Kind: consts.TaskKindNotifyPublication, PostID: 10,
	})
	assert.NoError(t, err)
	notificationRepo.AssertNotCalled(t, "CreateNotifications", mock.Anything, mock.Anything)
}
