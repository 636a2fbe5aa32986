package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/kafka"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const countCacheTTL = time.Minute * 10

type FollowService interface {
	Follow(ctx context.Context, followerID uint64, username string) error
	Unfollow(ctx context.Context, followerID uint64, username string) error
	IsFollowing(ctx context.Context, followerID uint64, username string) (bool, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
	ListFollowers(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error)
	ListFollowing(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error)
}

type FollowServiceImpl struct {
	followRepo repository.FollowRepo
	userRepo   repository.UserRepo
	producer   kafka.EventProducer
}

func NewFollowService(
	followRepo repository.FollowRepo,
	userRepo repository.UserRepo,
	producer kafka.EventProducer,
) FollowService {
	return &FollowServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
		producer:   producer,
	}
}

func (s *FollowServiceImpl) Follow(ctx context.Context, followerID uint64, username string) error {
	followed, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if followed == nil {
		return ErrUserNotFound
	}
	if followed.ID == followerID {
		return ErrFollowSelf
	}

	existing, err := s.followRepo.GetFollow(ctx, followerID, followed.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrFollowExist
	}

	follow := &model.Follow{
		FollowerID: followerID,
		FollowedID: followed.ID,
	}
	if err := s.followRepo.CreateFollowWithNotification(ctx, follow); err != nil {
		return err
	}

	s.invalidateCounts(ctx, followerID, followed.ID)
	s.pushBadge(ctx, followed.ID)

	err = s.producer.PublishEvent(ctx, kafka.Event{
		Type:       consts.EventFollowCreated,
		OccurredAt: follow.CreatedAt,
		Data: map[string]any{
			"id":          follow.ID,
			"follower_id": follow.FollowerID,
			"followed_id": follow.FollowedID,
		},
	})
	if err != nil {
		log.WarnContext(ctx, "failed to publish follow event", "follow_id", follow.ID, "err", err)
	}
	return nil
}

func (s *FollowServiceImpl) Unfollow(ctx context.Context, followerID uint64, username string) error {
	followed, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if followed == nil {
		return ErrUserNotFound
	}

	existing, err := s.followRepo.GetFollow(ctx, followerID, followed.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFollowNotFound
	}

	if err := s.followRepo.DeleteFollow(ctx, followerID, followed.ID); err != nil {
		return err
	}
	s.invalidateCounts(ctx, followerID, followed.ID)
	return nil
}

func (s *FollowServiceImpl) IsFollowing(ctx context.Context, followerID uint64, username string) (bool, error) {
	followed, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if followed == nil {
		return false, ErrUserNotFound
	}
	follow, err := s.followRepo.GetFollow(ctx, followerID, followed.ID)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

func (s *FollowServiceImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowerCountKey, s.followRepo.CountFollowers)
}

func (s *FollowServiceImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowingCountKey, s.followRepo.CountFollowing)
}

func (s *FollowServiceImpl) ListFollowers(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error) {
	return s.listRelated(ctx, username, limit, offset, s.followRepo.ListFollowers)
}

func (s *FollowServiceImpl) ListFollowing(ctx context.Context, username string, limit, offset int) ([]*dto.UserDTO, error) {
	return s.listRelated(ctx, username, limit, offset, s.followRepo.ListFollowing)
}

type fetchUsersFunc func(ctx context.Context, userID uint64, limit, offset int) ([]*model.User, error)
type fetchCountFunc func(ctx context.Context, userID uint64) (int64, error)

func (s *FollowServiceImpl) listRelated(ctx context.Context, username string, limit, offset int, fetch fetchUsersFunc) ([]*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	users, err := fetch(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, &dto.UserDTO{ID: u.ID, Username: u.Username})
	}
	return result, nil
}

// getCountCommon 旁路缓存：读 Redis，未命中回源并写回
func (s *FollowServiceImpl) getCountCommon(ctx context.Context, userID uint64, keyPrefix string, fetch fetchCountFunc) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userID, 10)
	value, err := redis.GetValue(ctx, key)
	if err == nil {
		if count, parseErr := strconv.ParseInt(value, 10, 64); parseErr == nil {
			return count, nil
		}
	}

	count, err := fetch(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := redis.SetWithExpiration(ctx, key, count, countCacheTTL); err != nil {
		log.WarnContext(ctx, "failed to cache follow count", "key", key, "err", err)
	}
	return count, nil
}

func (s *FollowServiceImpl) invalidateCounts(ctx context.Context, followerID, followedID uint64) {
	keys := []string{
		consts.UserFollowingCountKey + strconv.FormatUint(followerID, 10),
		consts.UserFollowerCountKey + strconv.FormatUint(followedID, 10),
		consts.NotifyUnreadCountKey + strconv.FormatUint(followedID, 10),
	}
	for _, key := range keys {
		if err := redis.DeleteKey(ctx, key); err != nil {
			log.WarnContext(ctx, "failed to invalidate cache", "key", key, "err", err)
		}
	}
}

// pushBadge 通过 Redis 频道把新通知信号推给被关注者的在线连接
func (s *FollowServiceImpl) pushBadge(ctx context.Context, userID uint64) {
	payload, err := json.Marshal(map[string]string{"type": model.NotifiableFollow})
	if err != nil {
		return
	}
	channel := consts.NotifyChannelKey + strconv.FormatUint(userID, 10)
	if err := redis.Publish(ctx, channel, string(payload)); err != nil {
		log.WarnContext(ctx, "failed to push notification badge", "user_id", userID, "err", err)
	}
}
