package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepo interface {
	GetFollow(ctx context.Context, followerID, followedID uint64) (*model.Follow, error)
	CreateFollowWithNotification(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, followerID, followedID uint64) error
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
	CountFollowing(ctx context.Context, userID uint64) (int64, error)
	ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
	ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

func (s *FollowRepoImpl) GetFollow(ctx context.Context, followerID, followedID uint64) (*model.Follow, error) {
	var follow model.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

// CreateFollowWithNotification 关注与被关注者的通知同事务落库，
// 保证关注成功则通知必达
func (s *FollowRepoImpl) CreateFollowWithNotification(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(follow).Error; err != nil {
			return err
		}
		notification := &model.Notification{
			UserID:         follow.FollowedID,
			NotifiableType: model.NotifiableFollow,
			NotifiableID:   follow.ID,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(notification).Error
	})
}

// DeleteFollow 取关时连同这条关注触发的通知一起删除
func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followedID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var follow model.Follow
		err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			First(&follow).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		err = tx.Where("notifiable_type = ? AND notifiable_id = ?", model.NotifiableFollow, follow.ID).
			Delete(&model.Notification{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&follow).Error
	})
}

func (s *FollowRepoImpl) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *FollowRepoImpl) CountFollowing(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *FollowRepoImpl) ListFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FollowRepoImpl) ListFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
