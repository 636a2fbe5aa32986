package consts

const (
	TaskQueuePendingKey = "taskqueue:pending"

	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	NotifyUnreadCountKey  = "notify:unread:count:"

	NotifyChannelKey  = "notify:channel:"
	ChatChannelKey    = "chat:channel:"
	CommentChannelKey = "comment:channel:"
)
