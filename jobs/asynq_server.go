package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Worker drives the background queue and its cron schedule over Redis.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// NewWorker builds a Worker bound to the default queue. Cron specs are
// interpreted in UTC.
func NewWorker(redis asynq.RedisClientOpt, logger *slog.Logger) *Worker {
	return &Worker{
		server: asynq.NewServer(redis, asynq.Config{
			Concurrency: 2,
			Queues:      map[string]int{QueueDefault: 1},
		}),
		mux:       asynq.NewServeMux(),
		scheduler: asynq.NewScheduler(redis, &asynq.SchedulerOpts{Location: time.UTC}),
		logger:    logger,
	}
}

// Handle registers the handler for a task type.
func (w *Worker) Handle(taskType string, handler asynq.HandlerFunc) {
	w.mux.HandleFunc(taskType, handler)
}

// Schedule enqueues task on every tick of the cron spec.
func (w *Worker) Schedule(spec string, task *asynq.Task, opts ...asynq.Option) error {
	_, err := w.scheduler.Register(spec, task, opts...)
	return err
}

// Run processes tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.scheduler.Start(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()

	select {
	case <-ctx.Done():
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}
