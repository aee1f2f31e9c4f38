package repository

import (
	"context"
	"database/sql"

	"sponsorsync-api/core/database"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event database operations
type EventRepository struct {
	DB database.Database
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventsByOrganizerID(ctx context.Context, organizerID uuid.UUID) ([]entity.Event, error)
	GetAllEvents(ctx context.Context) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

const eventColumns = `
	id, organizer_id, title, slug, category, description, location,
	budget_range, audience_size, event_date, engagement_metrics, created_at, updated_at
`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (organizer_id, title, slug, category, description, location, budget_range, audience_size, event_date, engagement_metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + eventColumns + `
	`

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.OrganizerID, event.Title, event.Slug, event.Category, event.Description,
		event.Location, event.BudgetRange, event.AudienceSize, event.EventDate, event.EngagementMetrics)

	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetEventsByOrganizerID(ctx context.Context, organizerID uuid.UUID) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, organizerID)
	if err != nil {
		logger.Error("EventRepository:GetEventsByOrganizerID", err)
		return nil, err
	}

	return events, nil
}

// GetAllEvents returns the full candidate set for sponsor-side matching
func (r *EventRepository) GetAllEvents(ctx context.Context) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query)
	if err != nil {
		logger.Error("EventRepository:GetAllEvents", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, category = $3, description = $4, location = $5,
		    budget_range = $6, audience_size = $7, event_date = $8,
		    engagement_metrics = $9, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Category, event.Description, event.Location,
		event.BudgetRange, event.AudienceSize, event.EventDate, event.EngagementMetrics)

	if err != nil {
		logger.Error("EventRepository:UpdateEvent", err)
		return err
	}

	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent", err)
		return err
	}
	return nil
}
