package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
	MarkPublished(ctx context.Context, id uint64) (bool, error)
	ListVisible(ctx context.Context, viewerID uint64, limit, offset int) ([]*model.Post, error)
	ListByUser(ctx context.Context, userID, viewerID uint64, limit, offset int) ([]*model.Post, error)
	ListReadyToPublish(ctx context.Context, now time.Time, limit int) ([]*model.Post, error)
	PreviousPost(ctx context.Context, post *model.Post, ownerScoped bool) (*model.Post, error)
	NextPost(ctx context.Context, post *model.Post, ownerScoped bool) (*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// GetPost 按 ID 查找，不存在返回 (nil, nil)
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetPostBySlug slug 是对外的唯一标识
func (s *PostRepoImpl) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost 只更新可编辑列，published 列永远走 MarkPublished，
// 避免陈旧的结构体覆盖并发任务刚刚翻转的发布位
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{ID: post.ID}).
		Select("title", "body", "slug", "published_at").
		Updates(map[string]interface{}{
			"title":        post.Title,
			"body":         post.Body,
			"slug":         post.Slug,
			"published_at": post.PublishedAt,
		}).Error
}

// DeletePost 帖子与引用它的通知同事务删除，
// 多态引用没有外键，孤儿通知只能在这里清理
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("notifiable_type = ? AND notifiable_id = ?", model.NotifiablePost, id).
			Delete(&model.Notification{}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

// MarkPublished 原子翻转发布位，返回值为 true 仅当本次调用完成了 false→true 的迁移
func (s *PostRepoImpl) MarkPublished(ctx context.Context, id uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND published = ?", id, false).
		Update("published", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListVisible 所有已发布帖子，viewerID 非零时并上其本人的全部帖子
func (s *PostRepoImpl) ListVisible(ctx context.Context, viewerID uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	query := s.db.WithContext(ctx).Model(&model.Post{})

	if viewerID != 0 {
		query = query.Where("published = ? OR user_id = ?", true, viewerID)
	} else {
		query = query.Where("published = ?", true)
	}

	err := query.
		Order("published_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUser 某作者的帖子列表，作者本人可见全部，其他人只见已发布
func (s *PostRepoImpl) ListByUser(ctx context.Context, userID, viewerID uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if viewerID != userID {
		query = query.Where("published = ?", true)
	}
	err := query.
		Order("published_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListReadyToPublish 计划时间已到但发布位未翻转的帖子，补投扫描用
func (s *PostRepoImpl) ListReadyToPublish(ctx context.Context, now time.Time, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("published = ? AND published_at IS NOT NULL AND published_at <= ?", false, now).
		Order("published_at asc").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// PreviousPost 按 published_at 升序取上一篇，同刻按 ID 升序破平
// 作者看自己的帖子在其全部帖子内导航，否则只在已发布集合内导航
func (s *PostRepoImpl) PreviousPost(ctx context.Context, post *model.Post, ownerScoped bool) (*model.Post, error) {
	if post.PublishedAt == nil {
		return nil, nil
	}

	var prev model.Post
	err := s.navigationScope(ctx, post, ownerScoped).
		Where("published_at < ? OR (published_at = ? AND id < ?)",
			post.PublishedAt, post.PublishedAt, post.ID).
		Order("published_at desc").
		Order("id desc").
		First(&prev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prev, nil
}

// NextPost 对称于 PreviousPost
func (s *PostRepoImpl) NextPost(ctx context.Context, post *model.Post, ownerScoped bool) (*model.Post, error) {
	if post.PublishedAt == nil {
		return nil, nil
	}

	var next model.Post
	err := s.navigationScope(ctx, post, ownerScoped).
		Where("published_at > ? OR (published_at = ? AND id > ?)",
			post.PublishedAt, post.PublishedAt, post.ID).
		Order("published_at asc").
		Order("id asc").
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &next, nil
}

func (s *PostRepoImpl) navigationScope(ctx context.Context, post *model.Post, ownerScoped bool) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&model.Post{})
	if ownerScoped {
		return query.Where("user_id = ?", post.UserID)
	}
	return query.Where("published = ?", true)
}
