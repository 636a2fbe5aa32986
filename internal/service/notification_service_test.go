package service

import (
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMarkAsReadOwnerOnly 只能标记自己的通知
func TestMarkAsReadOwnerOnly(t *testing.T) {
	notificationRepo := new(MockNotificationRepo)
	svc := NewNotificationService(notificationRepo)

	notification := &model.Notification{ID: 9, UserID: 1}
	notificationRepo.On("GetNotification", mock.Anything, uint64(9)).Return(notification, nil)

	err := svc.MarkAsRead(context.Background(), 2, 9)
	assert.ErrorIs(t, err, UnauthorizedError)
	notificationRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

// TestMarkAsReadIdempotent 已读通知重复标记是无操作
func TestMarkAsReadIdempotent(t *testing.T) {
	notificationRepo := new(MockNotificationRepo)
	svc := NewNotificationService(notificationRepo)

	notification := &model.Notification{ID: 9, UserID: 1, Read: true}
	notificationRepo.On("GetNotification", mock.Anything, uint64(9)).Return(notification, nil)

	err := svc.MarkAsRead(context.Background(), 1, 9)
	assert.NoError(t, err)
	notificationRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
}

func TestMarkAsReadSuccess(t *testing.T) {
	notificationRepo := new(MockNotificationRepo)
	svc := NewNotificationService(notificationRepo)

	notification := &model.Notification{ID: 9, UserID: 1, Read: false}
	notificationRepo.On("GetNotification", mock.Anything, uint64(9)).Return(notification, nil)
	notificationRepo.On("MarkAsRead", mock.Anything, uint64(9)).Return(nil)

	err := svc.MarkAsRead(context.Background(), 1, 9)
	assert.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}

func TestMarkAsReadMissing(t *testing.T) {
	notificationRepo := new(MockNotificationRepo)
	svc := NewNotificationService(notificationRepo)

	notificationRepo.On("GetNotification", mock.Anything, uint64(9)).Return(nil, nil)

	err := svc.MarkAsRead(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

// TestGetUnreadCountFallsBackToRepo 缓存不可用时回源数据库
func TestGetUnreadCountFallsBackToRepo(t *testing.T) {
	notificationRepo := new(MockNotificationRepo)
	svc := NewNotificationService(notificationRepo)

	notificationRepo.On("CountUnread", mock.Anything, uint64(1)).Return(int64(4), nil)

	count, err := svc.GetUnreadCount(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestMarkAllAsRead(t *testing.T) {
	notificationRepo := new(MockNotificationRepo)
	svc := NewNotificationService(notificationRepo)

	notificationRepo.On("MarkAllAsRead", mock.Anything, uint64(1)).Return(nil)

	err := svc.MarkAllAsRead(context.Background(), 1)
	assert.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}
