package job

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/taskqueue"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const sweepBatchSize = 500

// PublishSweepJob 定时兜底扫描：计划时间已到却仍未发布的帖子
// （进程重启丢了延迟任务、投递失败等）重新投递发布任务。
// 任务执行端的校验保证重复投递无副作用
type PublishSweepJob struct {
	postRepo repository.PostRepo
	queue    taskqueue.Queue
	now      func() time.Time
}

func NewPublishSweepJob(postRepo repository.PostRepo, queue taskqueue.Queue) *PublishSweepJob {
	return &PublishSweepJob{
		postRepo: postRepo,
		queue:    queue,
		now:      time.Now,
	}
}

func (s *PublishSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	posts, err := s.postRepo.ListReadyToPublish(ctx, s.now(), sweepBatchSize)
	if err != nil {
		log.ErrorContext(ctx, "publish sweep failed to list posts", "err", err)
		return
	}
	if len(posts) == 0 {
		return
	}

	enqueued := 0
	for _, post := range posts {
		err := s.queue.Enqueue(ctx, taskqueue.Task{
			Kind:        consts.TaskKindPublishPost,
			PostID:      post.ID,
			ScheduledAt: post.ScheduleEpoch(),
		})
		if err != nil {
			log.WarnContext(ctx, "publish sweep failed to enqueue", "post_id", post.ID, "err", err)
			continue
		}
		enqueued++
	}
	log.InfoContext(ctx, "publish sweep completed", "found", len(posts), "enqueued", enqueued)
}
