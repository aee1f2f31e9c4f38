package queue

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// MatchmakingGeneratePayload triggers recommendation generation for a user
type MatchmakingGeneratePayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// NewMatchmakingGenerateTask builds the background task that refreshes
// recommendations after an event or sponsor profile changes.
func NewMatchmakingGenerateTask(userID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(MatchmakingGeneratePayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMatchmakingGenerate, payload, asynq.MaxRetry(3)), nil
}
