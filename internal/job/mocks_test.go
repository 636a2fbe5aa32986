package job

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/kafka"
	"Inkstone/internal/pkg/taskqueue"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockPostRepo 是 PostRepo 接口的模拟实现
type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) CreatePost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepo) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepo) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepo) UpdatePost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepo) DeletePost(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepo) MarkPublished(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepo) ListVisible(ctx context.Context, viewerID uint64, limit, offset int) ([]*model.Post, error) {
	args := m.Called(ctx, viewerID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepo) ListByUser(ctx context.Context, userID, viewerID uint64, limit, offset int) ([]*model.Post, error) {
	args := m.Called(ctx, userID, viewerID, limit, offset)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepo) ListReadyToPublish(ctx context.Context, now time.Time, limit int) ([]*model.Post, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepo) PreviousPost(ctx context.Context, post *model.Post, ownerScoped bool) (*model.Post, error) {
	args := m.Called(ctx, post, ownerScoped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepo) NextPost(ctx context.Context, post *model.Post, ownerScoped bool) (*model.Post, error) {
	args := m.Called(ctx, post, ownerScoped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

// MockUserRepo 是 UserRepo 接口的模拟实现
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) ListUserIDsExcept(ctx context.Context, exceptID uint64) ([]uint64, error) {
	args := m.Called(ctx, exceptID)
	return args.Get(0).([]uint64), args.Error(1)
}

// MockNotificationRepo 是 NotificationRepo 接口的模拟实现
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) CreateNotifications(ctx context.Context, notifications []*model.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepo) GetNotification(ctx context.Context, id uint64) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkAllAsRead(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockQueue 是 taskqueue.Queue 接口的模拟实现
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, task taskqueue.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockQueue) EnqueueAt(ctx context.Context, task taskqueue.Task, runAt time.Time) error {
	args := m.Called(ctx, task, runAt)
	return args.Error(0)
}

// MockESRepo 是 es.PostRepo 接口的模拟实现
type MockESRepo struct {
	mock.Mock
}

func (m *MockESRepo) IndexPost(ctx context.Context, post *es.PostES) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockESRepo) DeletePost(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockESRepo) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*es.PostES, error) {
	args := m.Called(ctx, keyword, from, size)
	return args.Get(0).([]*es.PostES), args.Error(1)
}

// MockEventProducer 是 kafka.EventProducer 接口的模拟实现
type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishEvent(ctx context.Context, event kafka.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
