package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sponsorsync-api/core/errors"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/queue"
	"sponsorsync-api/modules/event/dto"
	"sponsorsync-api/modules/event/entity"
	"sponsorsync-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// EventService handles event business logic
type EventService struct {
	repo  repository.EventRepositoryInterface
	queue *queue.Queue
}

// NewEventService creates a new service instance
func NewEventService(repo repository.EventRepositoryInterface, q *queue.Queue) *EventService {
	return &EventService{repo: repo, queue: q}
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetMyEvents(ctx context.Context, organizerID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	ListEvents(ctx context.Context) ([]dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, organizerID, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, organizerID, id uuid.UUID) *errors.AppError
}

func (s *EventService) CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Event title is required", nil)
	}
	if req.BudgetRange != nil && !entity.IsValidBudgetRange(*req.BudgetRange) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Unknown budget range: %s", *req.BudgetRange), nil)
	}
	if req.AudienceSize != nil && *req.AudienceSize < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Audience size cannot be negative", nil)
	}

	metrics, appErr := marshalMetrics(req.EngagementMetrics)
	if appErr != nil {
		return nil, appErr
	}

	event := &entity.Event{
		OrganizerID:       organizerID,
		Title:             req.Title,
		Slug:              generateSlug(req.Title),
		Category:          req.Category,
		Description:       req.Description,
		Location:          req.Location,
		BudgetRange:       req.BudgetRange,
		AudienceSize:      req.AudienceSize,
		EventDate:         req.EventDate,
		EngagementMetrics: metrics,
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}

	s.enqueueMatchmaking(organizerID)

	return dto.ToEventResponse(created), nil
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return dto.ToEventResponse(event), nil
}

func (s *EventService) GetMyEvents(ctx context.Context, organizerID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetEventsByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list events", err)
	}
	return dto.ToEventResponses(events), nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetAllEvents(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list events", err)
	}
	return dto.ToEventResponses(events), nil
}

func (s *EventService) UpdateEvent(ctx context.Context, organizerID, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.OrganizerID != organizerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "You do not own this event", nil)
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Event title is required", nil)
		}
		event.Title = *req.Title
	}
	if req.BudgetRange != nil {
		if !entity.IsValidBudgetRange(*req.BudgetRange) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Unknown budget range: %s", *req.BudgetRange), nil)
		}
		event.BudgetRange = req.BudgetRange
	}
	if req.AudienceSize != nil {
		if *req.AudienceSize < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Audience size cannot be negative", nil)
		}
		event.AudienceSize = req.AudienceSize
	}
	if req.Category != nil {
		event.Category = req.Category
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.EventDate != nil {
		event.EventDate = req.EventDate
	}
	if req.EngagementMetrics != nil {
		metrics, appErr := marshalMetrics(req.EngagementMetrics)
		if appErr != nil {
			return nil, appErr
		}
		event.EngagementMetrics = metrics
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update event", err)
	}

	s.enqueueMatchmaking(organizerID)

	return dto.ToEventResponse(event), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, organizerID, id uuid.UUID) *errors.AppError {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.OrganizerID != organizerID {
		return errors.NewAppError(errors.ErrForbidden, "You do not own this event", nil)
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event", err)
	}
	return nil
}

// enqueueMatchmaking refreshes recommendations in the background. Failures
// are logged but never surfaced to the caller.
func (s *EventService) enqueueMatchmaking(organizerID uuid.UUID) {
	if s.queue == nil {
		return
	}
	task, err := queue.NewMatchmakingGenerateTask(organizerID)
	if err != nil {
		logger.Error("EventService:enqueueMatchmaking", err)
		return
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Error("EventService:enqueueMatchmaking", err)
	}
}

func generateSlug(title string) string {
	suffix, err := gonanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 6)
	if err != nil {
		suffix = uuid.NewString()[:6]
	}
	return slug.Make(title) + "-" + suffix
}

func marshalMetrics(metrics map[string]any) (*string, *errors.AppError) {
	if metrics == nil {
		return nil, nil
	}
	raw, err := json.Marshal(metrics)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid engagement metrics", err)
	}
	s := string(raw)
	return &s, nil
}
