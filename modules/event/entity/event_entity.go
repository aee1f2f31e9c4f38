package entity

import (
	"time"

	"github.com/google/uuid"
)

// BudgetRanges is the fixed ordered set of budget buckets shared by
// events and sponsors. Order matters: bucket distance drives the budget
// compatibility factor.
var BudgetRanges = []string{
	"$500 - $1,000",
	"$1,000 - $2,500",
	"$2,500 - $5,000",
	"$5,000 - $10,000",
	"$10,000 - $25,000",
	"$25,000+",
}

// IsValidBudgetRange reports whether b is one of the known buckets
func IsValidBudgetRange(b string) bool {
	for _, r := range BudgetRanges {
		if r == b {
			return true
		}
	}
	return false
}

// Event represents a student-organized occasion seeking sponsorship
type Event struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	OrganizerID       uuid.UUID  `db:"organizer_id" json:"organizer_id"`
	Title             string     `db:"title" json:"title"`
	Slug              string     `db:"slug" json:"slug"`
	Category          *string    `db:"category" json:"category,omitempty"`
	Description       *string    `db:"description" json:"description,omitempty"`
	Location          *string    `db:"location" json:"location,omitempty"`
	BudgetRange       *string    `db:"budget_range" json:"budget_range,omitempty"`
	AudienceSize      *int       `db:"audience_size" json:"audience_size,omitempty"`
	EventDate         *time.Time `db:"event_date" json:"event_date,omitempty"`
	EngagementMetrics *string    `db:"engagement_metrics" json:"engagement_metrics,omitempty"` // JSONB as string
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}
