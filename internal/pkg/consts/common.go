package consts

const (
	// 任务类型
	TaskKindPublishPost       = "publish_post"
	TaskKindNotifyPublication = "notify_publication"
)

const (
	// Kafka 领域事件
	EventPostPublished = "post.published"
	EventFollowCreated = "follow.created"
)

const (
	ChatRoomName = "lobby"
)
