package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
)

const unreadCacheTTL = time.Minute * 5

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uint64, limit, offset int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
}

type NotificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, userID uint64, limit, offset int) ([]*dto.NotificationDTO, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.NotificationDTO, 0, len(notifications))
	for _, notification := range notifications {
		notificationDTO := &dto.NotificationDTO{}
		_ = copier.Copy(notificationDTO, notification)
		result = append(result, notificationDTO)
	}
	return result, nil
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	key := consts.NotifyUnreadCountKey + strconv.FormatUint(userID, 10)
	value, err := redis.GetValue(ctx, key)
	if err == nil {
		if count, parseErr := strconv.ParseInt(value, 10, 64); parseErr == nil {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := redis.SetWithExpiration(ctx, key, count, unreadCacheTTL); err != nil {
		log.WarnContext(ctx, "failed to cache unread count", "user_id", userID, "err", err)
	}
	return count, nil
}

// MarkAsRead 已读的通知重复标记是幂等无操作
func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID, notificationID uint64) error {
	notification, err := s.notificationRepo.GetNotification(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.UserID != userID {
		return UnauthorizedError
	}
	if notification.Read {
		return nil
	}

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *NotificationServiceImpl) invalidateUnread(ctx context.Context, userID uint64) {
	key := consts.NotifyUnreadCountKey + strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "failed to invalidate unread count", "user_id", userID, "err", err)
	}
}
