package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"sponsorsync-api/core/errors"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/queue"
	"sponsorsync-api/modules/matchmaking/service"

	"github.com/hibiken/asynq"
)

// Worker runs recommendation generation off the request path
type Worker struct {
	svc service.MatchmakingServiceInterface
}

// NewWorker creates a worker bound to the matchmaking service
func NewWorker(svc service.MatchmakingServiceInterface) *Worker {
	return &Worker{svc: svc}
}

// Register attaches the worker's handlers to the queue
func (w *Worker) Register(q *queue.Queue) {
	q.HandleFunc(queue.TypeMatchmakingGenerate, w.HandleGenerate)
}

// HandleGenerate regenerates recommendations for the user named in the
// task. A missing role is permanent; everything else is retryable.
func (w *Worker) HandleGenerate(ctx context.Context, task *asynq.Task) error {
	var payload queue.MatchmakingGeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	result, appErr := w.svc.GenerateRecommendations(ctx, payload.UserID)
	if appErr != nil {
		if appErr.Code == errors.ErrRoleNotFound {
			logger.Warn("Worker:HandleGenerate:NoRole", "user_id", payload.UserID)
			return nil
		}
		return fmt.Errorf("generate recommendations: %w", appErr)
	}

	logger.Info("Worker:HandleGenerate",
		"user_id", payload.UserID,
		"generated", len(result.Recommendations),
	)
	return nil
}
