package queue

import (
	"context"

	"sponsorsync-api/core/config"
	"sponsorsync-api/core/logger"

	"github.com/hibiken/asynq"
)

// Task type names registered by modules
const (
	TypeMatchmakingGenerate = "matchmaking:generate"
)

// Queue wraps the asynq client/server pair backed by the shared Redis
// instance. Modules register handlers during Init; Start is called once
// from the server bootstrap.
type Queue struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewQueue(cfg config.RedisConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Logger:      asynqLogger{},
	})

	return &Queue{
		client: asynq.NewClient(redisOpt),
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

// Enqueue schedules a background task
func (q *Queue) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	info, err := q.client.Enqueue(task, opts...)
	if err != nil {
		return err
	}
	logger.Info("Queue:Enqueue", "task", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

// HandleFunc registers a handler for a task type
func (q *Queue) HandleFunc(pattern string, handler func(context.Context, *asynq.Task) error) {
	q.mux.HandleFunc(pattern, handler)
}

// Start runs the worker server in the background
func (q *Queue) Start() error {
	return q.server.Start(q.mux)
}

// Shutdown stops the worker server and closes the client
func (q *Queue) Shutdown() {
	q.server.Shutdown()
	if err := q.client.Close(); err != nil {
		logger.Error("Queue:Shutdown:Close", err)
	}
}

// asynqLogger adapts asynq's logging to core/logger
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "args", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "args", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "args", args) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "args", args) }
func (asynqLogger) Fatal(args ...any) { logger.Error("asynq:fatal", "args", args) }
