package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/kafka"
	mongopkg "Inkstone/internal/pkg/mongo"
	"Inkstone/internal/pkg/taskqueue"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	CronMgr  *cron.Manager
	Queue    *taskqueue.RedisQueue
	Producer kafka.EventProducer
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatRepo := mongopkg.NewChatMessageRepo(mongoDB)
	esPostRepo := es.NewPostRepo(es.Client)

	producer, err := kafka.NewEventProducer(cfg)
	if err != nil {
		return nil, err
	}

	queue := taskqueue.NewRedisQueue(cfg.TaskQueue)

	userService := service.NewUserService(userRepo, followRepo)
	postService := service.NewPostService(postRepo, userRepo, esPostRepo, queue)
	commentService := service.NewCommentService(commentRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo, producer)
	notificationService := service.NewNotificationService(notificationRepo)
	chatService := service.NewChatService(chatRepo)

	// 任务执行端注册
	publishJob := job.NewPublishPostJob(postRepo, esPostRepo, queue, producer)
	notifyJob := job.NewNotifyPublicationJob(postRepo, userRepo, notificationRepo)
	queue.Register(consts.TaskKindPublishPost, publishJob.Handle)
	queue.Register(consts.TaskKindNotifyPublication, notifyJob.Handle)

	sweepJob := job.NewPublishSweepJob(postRepo, queue)
	cronMgr := cron.NewCronManager(cfg.TaskQueue.SweepCron, sweepJob)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		PostHandler:         handler.NewPostHandler(postService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		UserFollowHandler:   handler.NewUserFollowHandler(followService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		ChatHandler:         handler.NewChatHandler(chatService),
		WsHandler:           handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:   router,
		DB:       db,
		CronMgr:  cronMgr,
		Queue:    queue,
		Producer: producer,
	}, nil
}
