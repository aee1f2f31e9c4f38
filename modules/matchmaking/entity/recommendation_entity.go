package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationStatus represents the lifecycle state of a recommendation
type RecommendationStatus string

const (
	RecommendationStatusPending    RecommendationStatus = "pending"
	RecommendationStatusInterested RecommendationStatus = "interested"
	RecommendationStatusContacted  RecommendationStatus = "contacted"
	RecommendationStatusRejected   RecommendationStatus = "rejected"
)

// IsValid reports whether s is one of the known statuses
func (s RecommendationStatus) IsValid() bool {
	switch s {
	case RecommendationStatusPending, RecommendationStatusInterested,
		RecommendationStatusContacted, RecommendationStatusRejected:
		return true
	}
	return false
}

// Recommendation is a scored pairing of one event and one sponsor. At most
// one row exists per (event_id, sponsor_id); the table carries a unique
// constraint and inserts treat a conflict as a benign skip.
type Recommendation struct {
	ID         uuid.UUID            `db:"id" json:"id"`
	Reference  string               `db:"reference" json:"reference"`
	EventID    uuid.UUID            `db:"event_id" json:"event_id"`
	SponsorID  uuid.UUID            `db:"sponsor_id" json:"sponsor_id"`
	MatchScore int                  `db:"match_score" json:"match_score"`
	Reasoning  string               `db:"reasoning" json:"reasoning"`
	Factors    string               `db:"factors" json:"factors"` // JSONB map factor -> 0..100
	Insights   *string              `db:"insights" json:"insights,omitempty"`
	Status     RecommendationStatus `db:"status" json:"status"`
	IsStarred  bool                 `db:"is_starred" json:"is_starred"`
	IsViewed   bool                 `db:"is_viewed" json:"is_viewed"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `db:"updated_at" json:"updated_at"`
}

// MatchHistory is the audit trail written on generation and status changes
type MatchHistory struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	RecommendationID *uuid.UUID `db:"recommendation_id" json:"recommendation_id,omitempty"`
	ActorID          uuid.UUID  `db:"actor_id" json:"actor_id"`
	Action           string     `db:"action" json:"action"`
	Metadata         *string    `db:"metadata" json:"metadata,omitempty"` // JSONB
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// History actions
const (
	HistoryActionGenerated     = "generated"
	HistoryActionStatusUpdated = "status_updated"
)
