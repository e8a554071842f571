package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"labourdesk/backend/internal/config"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisQueue is a Dispatcher backed by a Redis list.
type RedisQueue struct {
	Redis *redis.Client
	Key   string
}

// NewRedisQueue Constructor
func NewRedisQueue(rdb *redis.Client) *RedisQueue {
	return &RedisQueue{Redis: rdb, Key: config.NotifyQueueKey}
}

func (q *RedisQueue) Dispatch(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.Redis.LPush(ctx, q.Key, payload).Err()
}

// Worker consumes the Redis queue and delivers jobs through Senders. A job
// that fails is pushed back until it has been tried MaxAttempts times.
type Worker struct {
	Redis       *redis.Client
	Key         string
	Queue       Dispatcher
	Senders     Senders
	Logger      *zap.Logger
	MaxAttempts int
	PollTimeout time.Duration
}

func NewWorker(q *RedisQueue, senders Senders, logger *zap.Logger) *Worker {
	return &Worker{
		Redis:       q.Redis,
		Key:         q.Key,
		Queue:       q,
		Senders:     senders,
		Logger:      logger,
		MaxAttempts: config.NotifyMaxAttempts,
		PollTimeout: config.NotifyPollTimeout,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.Logger.Info("notification worker started", zap.String("queue", w.Key))
	for {
		if ctx.Err() != nil {
			w.Logger.Info("notification worker stopped")
			return
		}

		res, err := w.Redis.BRPop(ctx, w.PollTimeout, w.Key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.Logger.Error("failed to read notification queue", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		// BRPOP returns [key, value].
		if len(res) == 2 {
			w.process(ctx, res[1])
		}
	}
}

func (w *Worker) process(ctx context.Context, payload string) {
	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		w.Logger.Error("dropping malformed notification job", zap.Error(err))
		return
	}

	err := w.Senders.Deliver(ctx, job)
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= w.MaxAttempts {
		w.Logger.Error("notification failed, giving up",
			zap.Error(fmt.Errorf("%s via %s: %w", job.Template, job.Channel, err)),
			zap.Int("attempts", job.Attempts),
		)
		return
	}

	w.Logger.Warn("notification failed, requeueing",
		zap.Error(err),
		zap.String("template", job.Template),
		zap.Int("attempts", job.Attempts),
	)
	if err := w.Queue.Dispatch(ctx, job); err != nil {
		w.Logger.Error("failed to requeue notification", zap.Error(err))
	}
}
