package service

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/kafka"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestFollowSelfRejected 不能关注自己
func TestFollowSelfRejected(t *testing.T) {
	followRepo := new(MockFollowRepo)
	userRepo := new(MockUserRepo)
	svc := NewFollowService(followRepo, userRepo, new(MockEventProducer))

	userRepo.On("GetUserByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)

	err := svc.Follow(context.Background(), 1, "alice")
	assert.ErrorIs(t, err, ErrFollowSelf)
	followRepo.AssertNotCalled(t, "CreateFollowWithNotification", mock.Anything, mock.Anything)
}

// TestFollowDuplicateRejected 同一对关注关系只允许一条
func TestFollowDuplicateRejected(t *testing.T) {
	followRepo := new(MockFollowRepo)
	userRepo := new(MockUserRepo)
	svc := NewFollowService(followRepo, userRepo, new(MockEventProducer))

	userRepo.On("GetUserByUsername", mock.Anything, "bob").Return(&model.User{ID: 2, Username: "bob"}, nil)
	followRepo.On("GetFollow", mock.Anything, uint64(1), uint64(2)).Return(&model.Follow{ID: 7}, nil)

	err := svc.Follow(context.Background(), 1, "bob")
	assert.ErrorIs(t, err, ErrFollowExist)
	followRepo.AssertNotCalled(t, "CreateFollowWithNotification", mock.Anything, mock.Anything)
}

func TestFollowUnknownUser(t *testing.T) {
	followRepo := new(MockFollowRepo)
	userRepo := new(MockUserRepo)
	svc := NewFollowService(followRepo, userRepo, new(MockEventProducer))

	userRepo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, nil)

	err := svc.Follow(context.Background(), 1, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// TestFollowSuccess 关注成功：同事务落通知，并广播领域事件
func TestFollowSuccess(t *testing.T) {
	followRepo := new(MockFollowRepo)
	userRepo := new(MockUserRepo)
	producer := new(MockEventProducer)
	svc := NewFollowService(followRepo, userRepo, producer)

	userRepo.On("GetUserByUsername", mock.Anything, "bob").Return(&model.User{ID: 2, Username: "bob"}, nil)
	followRepo.On("GetFollow", mock.Anything, uint64(1), uint64(2)).Return(nil, nil)
	followRepo.On("CreateFollowWithNotification", mock.Anything, mock.MatchedBy(func(f *model.Follow) bool {
		return f.FollowerID == 1 && f.FollowedID == 2
	})).Return(nil)
	producer.On("PublishEvent", mock.Anything, mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == consts.EventFollowCreated
	})).Return(nil)

	err := svc.Follow(context.Background(), 1, "bob")
	assert.NoError(t, err)
	followRepo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestUnfollowNotFollowing(t *testing.T) {
	followRepo := new(MockFollowRepo)
	userRepo := new(MockUserRepo)
	svc := NewFollowService(followRepo, userRepo, new(MockEventProducer))

	userRepo.On("GetUserByUsername", mock.Anything, "bob").Return(&model.User{ID: 2}, nil)
	followRepo.On("GetFollow", mock.Anything, uint64(1), uint64(2)).Return(nil, nil)

	err := svc.Unfollow(context.Background(), 1, "bob")
	assert.ErrorIs(t, err, ErrFollowNotFound)
}

func TestUnfollowSuccess(t *testing.T) {
	followRepo := new(MockFollowRepo)
	userRepo := new(MockUserRepo)
	svc := NewFollowService(followRepo, userRepo, new(MockEventProducer))

	userRepo.On("GetUserByUsername", mock.Anything, "bob").Return(&model.User{ID: 2}, nil)
	followRepo.On("GetFollow", mock.Anything, uint64(1), uint64(2)).Return(&model.Follow{ID: 7}, nil)
	followRepo.On("DeleteFollow", mock.Anything, uint64(1), uint64(2)).Return(nil)

	err := svc.Unfollow(context.Background(), 1, "bob")
	assert.NoError(t, err)
	followRepo.AssertExpectations(t)
}

// TestGetFollowerCountFallsBackToRepo 缓存不可用时回源数据库
func TestGetFollowerCountFallsBackToRepo(t *testing.T) {
	followRepo := new(MockFollowRepo)
	svc := NewFollowService(followRepo, new(MockUserRepo), new(MockEventProducer))

	followRepo.On("CountFollowers", mock.Anything, uint64(1)).Return(int64(12), nil)

	count, err := svc.GetFollowerCount(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
