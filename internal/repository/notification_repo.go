package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepo interface {
	CreateNotifications(ctx context.Context, notifications []*model.Notification) error
	GetNotification(ctx context.Context, id uint64) (*model.Notification, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Notification, error)
	MarkAsRead(ctx context.Context, id uint64) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
	CountUnread(ctx context.Context, userID uint64) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db: db}
}

// CreateNotifications 唯一索引兜底，任务重放不会产生重复通知
func (s *NotificationRepoImpl) CreateNotifications(ctx context.Context, notifications []*model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(notifications, 500).Error
}

func (s *NotificationRepoImpl) GetNotification(ctx context.Context, id uint64) (*model.Notification, error) {
	var notification model.Notification
	err := s.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (s *NotificationRepoImpl) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationRepoImpl) MarkAsRead(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (s *NotificationRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error
}

func (s *NotificationRepoImpl) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	return count, err
}
