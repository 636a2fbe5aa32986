package job

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/taskqueue"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"strconv"

	"github.com/goccy/go-json"
)

// NotifyPublicationJob 帖子刚完成发布后给除作者外的所有用户落一条通知
// 通知表的唯一索引保证任务重放不会重复通知
type NotifyPublicationJob struct {
	postRepo         repository.PostRepo
	userRepo         repository.UserRepo
	notificationRepo repository.NotificationRepo
}

func NewNotifyPublicationJob(
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	notificationRepo repository.NotificationRepo,
) *NotifyPublicationJob {
	return &NotifyPublicationJob{
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *NotifyPublicationJob) Handle(ctx context.Context, task taskqueue.Task) error {
	post, err := s.postRepo.GetPost(ctx, task.PostID)
	if err != nil {
		return err
	}
	// 发布后又被删除
	if post == nil {
		return nil
	}

	userIDs, err := s.userRepo.ListUserIDsExcept(ctx, post.UserID)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]*model.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, &model.Notification{
			UserID:         userID,
			NotifiableType: model.NotifiablePost,
			NotifiableID:   post.ID,
		})
	}
	if err := s.notificationRepo.CreateNotifications(ctx, notifications); err != nil {
		return err
	}

	log.InfoContext(ctx, "publication notifications created",
		"post_id", post.ID, "recipients", len(userIDs))

	s.pushBadges(ctx, userIDs)
	return nil
}

func (s *NotifyPublicationJob) pushBadges(ctx context.Context, userIDs []uint64) {
	payload, err := json.Marshal(map[string]string{"type": model.NotifiablePost})
	if err != nil {
		return
	}
	for _, userID := range userIDs {
		key := consts.NotifyUnreadCountKey + strconv.FormatUint(userID, 10)
		if err := redis.DeleteKey(ctx, key); err != nil {
			log.WarnContext(ctx, "failed to invalidate unread count", "user_id", userID, "err", err)
		}
		channel := consts.NotifyChannelKey + strconv.FormatUint(userID, 10)
		if err := redis.Publish(ctx, channel, string(payload)); err != nil {
			log.WarnContext(ctx, "failed to push notification badge", "user_id", userID, "err", err)
		}
	}
}
