package taskqueue

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	redisv9 "github.com/redis/go-redis/v9"
)

const retryBackoff = 30 * time.Second

// scoreFor 执行时刻向上取整到秒，轮询按整秒认领，
// 向下取整会让带亚秒的任务提前最多一秒被消费掉
func scoreFor(runAt time.Time) int64 {
	score := runAt.Unix()
	if runAt.Nanosecond() > 0 {
		score++
	}
	return score
}

// RedisQueue Redis ZSET 延迟队列：score 为执行时刻，到期成员被工作协程认领执行
// 认领通过 ZREM 完成，同一成员只会有一个赢家，崩溃丢失的任务由扫描任务补投
type RedisQueue struct {
	key          string
	pollInterval time.Duration
	workers      int
	maxRetries   int

	mu       sync.RWMutex
	handlers map[string]Handler

	now func() time.Time
}

func NewRedisQueue(cfg config.TaskQueueConfig) *RedisQueue {
	pollInterval := time.Duration(cfg.PollInterval) * time.Second
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	return &RedisQueue{
		key:          consts.TaskQueuePendingKey,
		pollInterval: pollInterval,
		workers:      workers,
		maxRetries:   cfg.MaxRetries,
		handlers:     make(map[string]Handler),
		now:          time.Now,
	}
}

// Register 按 Kind 注册执行函数，需在 Start 之前完成
func (q *RedisQueue) Register(kind string, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[kind] = h
}

func (q *RedisQueue) Enqueue(ctx context.Context, task Task) error {
	return q.EnqueueAt(ctx, task, q.now())
}

func (q *RedisQueue) EnqueueAt(ctx context.Context, task Task, runAt time.Time) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "marshal task")
	}

	err = redis.GetRdbClient().ZAdd(ctx, q.key, redisv9.Z{
		Score:  float64(scoreFor(runAt)),
		Member: string(payload),
	}).Err()
	if err != nil {
		return errors.Wrap(err, "zadd task")
	}

	log.InfoContext(ctx, "task enqueued",
		"kind", task.Kind, "post_id", task.PostID, "run_at", runAt.Unix())
	return nil
}

// Start 轮询到期任务并分发给工作协程，阻塞直到 ctx 取消
func (q *RedisQueue) Start(ctx context.Context) error {
	taskChan := make(chan Task, q.workers*2)

	var wg sync.WaitGroup
	wg.Add(q.workers)
	for i := 0; i < q.workers; i++ {
		go func() {
			defer wg.Done()
			for task := range taskChan {
				q.handle(ctx, task)
			}
		}()
	}

	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()

	log.Info("Task queue worker started", "workers", q.workers, "poll_interval", q.pollInterval)

	for {
		select {
		case <-ctx.Done():
			close(taskChan)
			wg.Wait()
			log.Info("Task queue worker stopped")
			return nil
		case <-ticker.C:
			q.poll(ctx, taskChan)
		}
	}
}

// poll 认领所有到期成员
func (q *RedisQueue) poll(ctx context.Context, taskChan chan<- Task) {
	rdb := redis.GetRdbClient()
	maxScore := strconv.FormatInt(q.now().Unix(), 10)

	members, err := rdb.ZRangeByScore(ctx, q.key, &redisv9.ZRangeBy{
		Min: "-inf",
		Max: maxScore,
	}).Result()
	if err != nil {
		log.Error("poll task queue failed", "err", err)
		return
	}

	for _, member := range members {
		// ZREM 返回 1 才算认领成功，多实例部署时只有一个赢家
		removed, err := rdb.ZRem(ctx, q.key, member).Result()
		if err != nil || removed == 0 {
			continue
		}

		var task Task
		if err := json.Unmarshal([]byte(member), &task); err != nil {
			log.Error("invalid task payload dropped", "payload", member, "err", err)
			continue
		}

		select {
		case taskChan <- task:
		case <-ctx.Done():
			return
		}
	}
}

func (q *RedisQueue) handle(ctx context.Context, task Task) {
	q.mu.RLock()
	h, ok := q.handlers[task.Kind]
	q.mu.RUnlock()

	if !ok {
		log.Error("no handler registered for task", "kind", task.Kind)
		return
	}

	// 任务日志以任务 ID 关联
	ctx = logger.WithTraceID(ctx, task.ID)

	if err := h(ctx, task); err != nil {
		log.Error("task execution failed", "kind", task.Kind, "post_id", task.PostID,
			"attempts", task.Attempts, "err", err)

		if task.Attempts >= q.maxRetries {
			log.Error("task dropped after max retries", "kind", task.Kind, "post_id", task.PostID)
			return
		}

		task.Attempts++
		if err := q.EnqueueAt(ctx, task, q.now().Add(retryBackoff)); err != nil {
			log.Error("task requeue failed", "kind", task.Kind, "err", err)
		}
	}
}
