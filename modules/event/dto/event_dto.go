package dto

import (
	"time"

	"sponsorsync-api/modules/event/entity"

	"github.com/google/uuid"
)

// CreateEventRequest is the payload for creating an event
type CreateEventRequest struct {
	Title             string         `json:"title" validate:"required"`
	Category          *string        `json:"category,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Location          *string        `json:"location,omitempty"`
	BudgetRange       *string        `json:"budget_range,omitempty"`
	AudienceSize      *int           `json:"audience_size,omitempty"`
	EventDate         *time.Time     `json:"event_date,omitempty"`
	EngagementMetrics map[string]any `json:"engagement_metrics,omitempty"`
}

// UpdateEventRequest is the payload for updating an event. Nil fields keep
// their current value.
type UpdateEventRequest struct {
	Title             *string        `json:"title,omitempty"`
	Category          *string        `json:"category,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Location          *string        `json:"location,omitempty"`
	BudgetRange       *string        `json:"budget_range,omitempty"`
	AudienceSize      *int           `json:"audience_size,omitempty"`
	EventDate         *time.Time     `json:"event_date,omitempty"`
	EngagementMetrics map[string]any `json:"engagement_metrics,omitempty"`
}

// EventResponse is the API representation of an event
type EventResponse struct {
	ID                uuid.UUID  `json:"id"`
	OrganizerID       uuid.UUID  `json:"organizer_id"`
	Title             string     `json:"title"`
	Slug              string     `json:"slug"`
	Category          *string    `json:"category,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Location          *string    `json:"location,omitempty"`
	BudgetRange       *string    `json:"budget_range,omitempty"`
	AudienceSize      *int       `json:"audience_size,omitempty"`
	EventDate         *time.Time `json:"event_date,omitempty"`
	EngagementMetrics *string    `json:"engagement_metrics,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToEventResponse maps an entity to its API representation
func ToEventResponse(event *entity.Event) *EventResponse {
	if event == nil {
		return nil
	}
	return &EventResponse{
		ID:                event.ID,
		OrganizerID:       event.OrganizerID,
		Title:             event.Title,
		Slug:              event.Slug,
		Category:          event.Category,
		Description:       event.Description,
		Location:          event.Location,
		BudgetRange:       event.BudgetRange,
		AudienceSize:      event.AudienceSize,
		EventDate:         event.EventDate,
		EngagementMetrics: event.EngagementMetrics,
		CreatedAt:         event.CreatedAt,
		UpdatedAt:         event.UpdatedAt,
	}
}

// ToEventResponses maps a slice of entities
func ToEventResponses(events []entity.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *ToEventResponse(&events[i]))
	}
	return out
}
