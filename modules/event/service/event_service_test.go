package service

import (
	"context"
	"strings"
	"testing"

	coreErrors "sponsorsync-api/core/errors"
	"sponsorsync-api/modules/event/dto"
	"sponsorsync-api/modules/event/entity"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*entity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uuid.UUID]*entity.Event{}}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	stored := *event
	stored.ID = uuid.New()
	f.events[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) GetEventsByOrganizerID(_ context.Context, organizerID uuid.UUID) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		if e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetAllEvents(_ context.Context) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event *entity.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil)
	organizerID := uuid.New()

	result, appErr := svc.CreateEvent(context.Background(), organizerID, &dto.CreateEventRequest{
		Title:             "Tech Summit 2026",
		Category:          strPtr("Technology"),
		BudgetRange:       strPtr("$5,000 - $10,000"),
		AudienceSize:      intPtr(500),
		EngagementMetrics: map[string]any{"social_reach": 12000},
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if !strings.HasPrefix(result.Slug, "tech-summit-2026-") {
		t.Fatalf("unexpected slug: %s", result.Slug)
	}
	if result.OrganizerID != organizerID {
		t.Fatalf("organizer not set")
	}
	if result.EngagementMetrics == nil || !strings.Contains(*result.EngagementMetrics, "social_reach") {
		t.Fatalf("engagement metrics not stored as JSON")
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil)

	cases := []struct {
		name string
		req  dto.CreateEventRequest
	}{
		{"blank title", dto.CreateEventRequest{Title: "   "}},
		{"bad budget", dto.CreateEventRequest{Title: "Gala", BudgetRange: strPtr("$1 - $5")}},
		{"negative audience", dto.CreateEventRequest{Title: "Gala", AudienceSize: intPtr(-1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := svc.CreateEvent(context.Background(), uuid.New(), &tc.req)
			if appErr == nil || appErr.Code != coreErrors.ErrInvalidInput {
				t.Fatalf("expected invalid-input error, got %v", appErr)
			}
		})
	}
}

func TestUpdateEventOwnership(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)
	ownerID := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), ownerID, &dto.CreateEventRequest{Title: "Gala"})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	_, appErr = svc.UpdateEvent(context.Background(), uuid.New(), created.ID, &dto.UpdateEventRequest{Title: strPtr("Stolen")})
	if appErr == nil || appErr.Code != coreErrors.ErrForbidden {
		t.Fatalf("expected forbidden error for non-owner, got %v", appErr)
	}

	updated, appErr := svc.UpdateEvent(context.Background(), ownerID, created.ID, &dto.UpdateEventRequest{Title: strPtr("Winter Gala")})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if updated.Title != "Winter Gala" {
		t.Fatalf("title not updated: %s", updated.Title)
	}
}

func TestDeleteEventNotFound(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil)

	appErr := svc.DeleteEvent(context.Background(), uuid.New(), uuid.New())
	if appErr == nil || appErr.Code != coreErrors.ErrNotFound {
		t.Fatalf("expected not-found error, got %v", appErr)
	}
}

func TestBudgetRangesAreValid(t *testing.T) {
	for _, r := range entity.BudgetRanges {
		if !entity.IsValidBudgetRange(r) {
			t.Fatalf("bucket %q not recognized by its own validator", r)
		}
	}
	if entity.IsValidBudgetRange("$0 - $100") {
		t.Fatalf("unknown bucket accepted")
	}
}
