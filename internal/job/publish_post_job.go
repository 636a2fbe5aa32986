package job

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/kafka"
	"Inkstone/internal/pkg/taskqueue"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// PublishPostJob 执行到点发布。任务自带入队时捕获的计划时间，
// 执行前按序校验，任何一条不满足都视为任务已过时，静默放弃
type PublishPostJob struct {
	postRepo repository.PostRepo
	esRepo   es.PostRepo
	queue    taskqueue.Queue
	producer kafka.EventProducer
	now      func() time.Time
}

func NewPublishPostJob(
	postRepo repository.PostRepo,
	esRepo es.PostRepo,
	queue taskqueue.Queue,
	producer kafka.EventProducer,
) *PublishPostJob {
	return &PublishPostJob{
		postRepo: postRepo,
		esRepo:   esRepo,
		queue:    queue,
		producer: producer,
		now:      time.Now,
	}
}

func (s *PublishPostJob) Handle(ctx context.Context, task taskqueue.Task) error {
	post, err := s.postRepo.GetPost(ctx, task.PostID)
	if err != nil {
		return err
	}
	// 帖子已删除
	if post == nil {
		return nil
	}
	// 已经发布过
	if post.Published {
		return nil
	}
	// 排期被清空，退回草稿
	if post.PublishedAt == nil {
		return nil
	}
	// 改到了更晚的时间，届时会有携带新计划时间的任务
	if post.PublishedAt.After(s.now()) {
		return nil
	}
	// 计划时间和入队时不一致，本任务已被后续编辑作废
	if post.ScheduleEpoch() != task.ScheduledAt {
		return nil
	}

	transitioned, err := s.postRepo.MarkPublished(ctx, post.ID)
	if err != nil {
		return err
	}
	// 并发执行下只有完成迁移的那一次继续做副作用
	if !transitioned {
		return nil
	}

	log.InfoContext(ctx, "post published", "post_id", post.ID, "scheduled_at", task.ScheduledAt)

	err = s.queue.Enqueue(ctx, taskqueue.Task{
		Kind:   consts.TaskKindNotifyPublication,
		PostID: post.ID,
	})
	if err != nil {
		return err
	}

	s.indexPost(ctx, post)
	s.publishEvent(ctx, post)
	return nil
}

func (s *PublishPostJob) indexPost(ctx context.Context, post *model.Post) {
	doc := &es.PostES{
		ID:          post.ID,
		UserID:      post.UserID,
		Title:       post.Title,
		Body:        post.Body,
		Slug:        post.Slug,
		PublishedAt: *post.PublishedAt,
	}
	if err := s.esRepo.IndexPost(ctx, doc); err != nil {
		log.WarnContext(ctx, "failed to index published post", "post_id", post.ID, "err", err)
	}
}

func (s *PublishPostJob) publishEvent(ctx context.Context, post *model.Post) {
	err := s.producer.PublishEvent(ctx, kafka.Event{
		Type:       consts.EventPostPublished,
		OccurredAt: s.now(),
		Data: map[string]any{
			"id":           post.ID,
			"user_id":      post.UserID,
			"slug":         post.Slug,
			"published_at": post.PublishedAt.Unix(),
		},
	})
	if err != nil {
		log.WarnContext(ctx, "failed to publish post event", "post_id", post.ID, "err", err)
	}
}
