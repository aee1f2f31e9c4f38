package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	coreErrors "sponsorsync-api/core/errors"
	eventEntity "sponsorsync-api/modules/event/entity"
	"sponsorsync-api/modules/matchmaking/entity"
	notificationDto "sponsorsync-api/modules/notification/dto"
	sponsorEntity "sponsorsync-api/modules/sponsor/entity"

	"github.com/google/uuid"
)

type pairKey struct {
	eventID   uuid.UUID
	sponsorID uuid.UUID
}

type fakeRecommendationRepo struct {
	roles       map[uuid.UUID]string
	existing    map[pairKey]*entity.Recommendation
	details     map[pairKey]*entity.RecommendationDetail
	insertErrOn map[pairKey]error
	conflictOn  map[pairKey]bool

	inserted []*entity.Recommendation
	history  []*entity.MatchHistory
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{
		roles:       map[uuid.UUID]string{},
		existing:    map[pairKey]*entity.Recommendation{},
		details:     map[pairKey]*entity.RecommendationDetail{},
		insertErrOn: map[pairKey]error{},
		conflictOn:  map[pairKey]bool{},
	}
}

func (f *fakeRecommendationRepo) GetUserRole(_ context.Context, userID uuid.UUID) (string, error) {
	return f.roles[userID], nil
}

func (f *fakeRecommendationRepo) GetByPair(_ context.Context, eventID, sponsorID uuid.UUID) (*entity.Recommendation, error) {
	return f.existing[pairKey{eventID, sponsorID}], nil
}

func (f *fakeRecommendationRepo) Insert(_ context.Context, rec *entity.Recommendation) (*entity.Recommendation, error) {
	key := pairKey{rec.EventID, rec.SponsorID}
	if err := f.insertErrOn[key]; err != nil {
		return nil, err
	}
	if f.conflictOn[key] {
		return nil, nil
	}
	stored := *rec
	stored.ID = uuid.New()
	f.inserted = append(f.inserted, &stored)
	f.existing[key] = &stored
	return &stored, nil
}

func (f *fakeRecommendationRepo) UpdateStatusFields(_ context.Context, eventID, sponsorID uuid.UUID, status *string, isStarred, isViewed *bool) (*entity.Recommendation, error) {
	rec := f.existing[pairKey{eventID, sponsorID}]
	if rec == nil {
		return nil, nil
	}
	if status != nil {
		rec.Status = entity.RecommendationStatus(*status)
	}
	if isStarred != nil {
		rec.IsStarred = *isStarred
	}
	if isViewed != nil {
		rec.IsViewed = *isViewed
	}
	return rec, nil
}

func (f *fakeRecommendationRepo) GetDetailByPair(_ context.Context, eventID, sponsorID uuid.UUID) (*entity.RecommendationDetail, error) {
	return f.details[pairKey{eventID, sponsorID}], nil
}

func (f *fakeRecommendationRepo) ListForOrganizer(_ context.Context, _ uuid.UUID) ([]entity.RecommendationDetail, error) {
	return nil, nil
}

func (f *fakeRecommendationRepo) ListForSponsorUser(_ context.Context, _ uuid.UUID) ([]entity.RecommendationDetail, error) {
	return nil, nil
}

func (f *fakeRecommendationRepo) InsertHistory(_ context.Context, h *entity.MatchHistory) error {
	f.history = append(f.history, h)
	return nil
}

type fakeEventRepo struct {
	byOrganizer map[uuid.UUID][]eventEntity.Event
	all         []eventEntity.Event
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, e *eventEntity.Event) (*eventEntity.Event, error) {
	return e, nil
}

func (f *fakeEventRepo) GetEventByID(_ context.Context, _ uuid.UUID) (*eventEntity.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetEventsByOrganizerID(_ context.Context, organizerID uuid.UUID) ([]eventEntity.Event, error) {
	return f.byOrganizer[organizerID], nil
}

func (f *fakeEventRepo) GetAllEvents(_ context.Context) ([]eventEntity.Event, error) {
	return f.all, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, _ *eventEntity.Event) error { return nil }
func (f *fakeEventRepo) DeleteEvent(_ context.Context, _ uuid.UUID) error          { return nil }

type fakeSponsorRepo struct {
	byUser map[uuid.UUID]*sponsorEntity.Sponsor
	all    []sponsorEntity.Sponsor
}

func (f *fakeSponsorRepo) CreateSponsor(_ context.Context, s *sponsorEntity.Sponsor) (*sponsorEntity.Sponsor, error) {
	return s, nil
}

func (f *fakeSponsorRepo) GetSponsorByID(_ context.Context, _ uuid.UUID) (*sponsorEntity.Sponsor, error) {
	return nil, nil
}

func (f *fakeSponsorRepo) GetSponsorByUserID(_ context.Context, userID uuid.UUID) (*sponsorEntity.Sponsor, error) {
	return f.byUser[userID], nil
}

func (f *fakeSponsorRepo) GetAllSponsors(_ context.Context) ([]sponsorEntity.Sponsor, error) {
	return f.all, nil
}

func (f *fakeSponsorRepo) UpdateSponsor(_ context.Context, _ *sponsorEntity.Sponsor) error {
	return nil
}

// fixedScorer returns a constant score, with optional per-pair overrides
type fixedScorer struct {
	score     int
	overrides map[pairKey]int
}

func (s *fixedScorer) Score(_ context.Context, event EventProfile, sponsor SponsorProfile) MatchResult {
	score := s.score
	if v, ok := s.overrides[pairKey{event.ID, sponsor.ID}]; ok {
		score = v
	}
	return MatchResult{
		Score:     score,
		Reasoning: fmt.Sprintf("fixed score %d", score),
		Factors:   map[string]int{FactorThemeCompatibility: score},
		Insights:  "test insights",
	}
}

type fakeNotifier struct {
	created []*notificationDto.CreateNotificationRequest
	err     error
}

func (f *fakeNotifier) Create(_ context.Context, req *notificationDto.CreateNotificationRequest) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, req)
	return nil
}

func makeEvent(organizerID uuid.UUID, title string) eventEntity.Event {
	return eventEntity.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       title,
	}
}

func makeSponsor(userID uuid.UUID, name string) sponsorEntity.Sponsor {
	return sponsorEntity.Sponsor{
		ID:          uuid.New(),
		UserID:      userID,
		CompanyName: name,
	}
}

func TestGenerateRecommendationsStudent(t *testing.T) {
	studentID := uuid.New()

	events := []eventEntity.Event{makeEvent(studentID, "Hackathon"), makeEvent(studentID, "Career Fair")}
	sponsors := []sponsorEntity.Sponsor{makeSponsor(uuid.New(), "Acme"), makeSponsor(uuid.New(), "Globex")}

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"

	notifier := &fakeNotifier{}
	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: events}},
		&fakeSponsorRepo{all: sponsors},
		&fixedScorer{score: 75},
		notifier,
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), studentID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(result.Recommendations) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(result.Recommendations))
	}
	if result.Message != "Generated 4 new sponsor recommendations" {
		t.Fatalf("unexpected message: %s", result.Message)
	}

	for _, rec := range repo.inserted {
		if rec.Status != entity.RecommendationStatusPending {
			t.Fatalf("expected pending status, got %s", rec.Status)
		}
		if rec.Reference == "" {
			t.Fatalf("expected a reference code")
		}
		if rec.MatchScore != 75 {
			t.Fatalf("expected stored score 75, got %d", rec.MatchScore)
		}
	}

	// One history row per insert, two notifications per insert.
	if len(repo.history) != 4 {
		t.Fatalf("expected 4 history rows, got %d", len(repo.history))
	}
	if len(notifier.created) != 8 {
		t.Fatalf("expected 8 notifications, got %d", len(notifier.created))
	}
}

func TestGenerateRecommendationsThreshold(t *testing.T) {
	studentID := uuid.New()
	eventAt := makeEvent(studentID, "At Threshold")
	eventAbove := makeEvent(studentID, "Above Threshold")
	sp := makeSponsor(uuid.New(), "Acme")

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"

	scorer := &fixedScorer{overrides: map[pairKey]int{
		{eventAt.ID, sp.ID}:    60,
		{eventAbove.ID, sp.ID}: 61,
	}}

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: {eventAt, eventAbove}}},
		&fakeSponsorRepo{all: []sponsorEntity.Sponsor{sp}},
		scorer, nil,
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), studentID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(result.Recommendations) != 1 {
		t.Fatalf("expected exactly 1 recommendation (score 60 must not qualify), got %d", len(result.Recommendations))
	}
	if result.Recommendations[0].EventID != eventAbove.ID {
		t.Fatalf("wrong pairing persisted")
	}
}

func TestGenerateRecommendationsSkipsExistingPairs(t *testing.T) {
	studentID := uuid.New()
	event := makeEvent(studentID, "Hackathon")
	sp := makeSponsor(uuid.New(), "Acme")

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"
	repo.existing[pairKey{event.ID, sp.ID}] = &entity.Recommendation{ID: uuid.New()}

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: {event}}},
		&fakeSponsorRepo{all: []sponsorEntity.Sponsor{sp}},
		&fixedScorer{score: 90}, nil,
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), studentID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("expected existing pair to be skipped")
	}
	if result.Message != "Generated 0 new sponsor recommendations" {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestGenerateRecommendationsIdempotent(t *testing.T) {
	studentID := uuid.New()
	event := makeEvent(studentID, "Hackathon")
	sp := makeSponsor(uuid.New(), "Acme")

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: {event}}},
		&fakeSponsorRepo{all: []sponsorEntity.Sponsor{sp}},
		&fixedScorer{score: 90}, nil,
	)

	first, _ := svc.GenerateRecommendations(context.Background(), studentID)
	second, _ := svc.GenerateRecommendations(context.Background(), studentID)

	if len(first.Recommendations) != 1 || len(second.Recommendations) != 0 {
		t.Fatalf("expected second run to generate nothing, got %d then %d",
			len(first.Recommendations), len(second.Recommendations))
	}
}

func TestGenerateRecommendationsConflictSkip(t *testing.T) {
	studentID := uuid.New()
	event := makeEvent(studentID, "Hackathon")
	sp := makeSponsor(uuid.New(), "Acme")

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"
	repo.conflictOn[pairKey{event.ID, sp.ID}] = true

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: {event}}},
		&fakeSponsorRepo{all: []sponsorEntity.Sponsor{sp}},
		&fixedScorer{score: 90}, nil,
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), studentID)
	if appErr != nil {
		t.Fatalf("a concurrent insert must not surface as an error, got %v", appErr)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("conflicting insert must not be reported as generated")
	}
}

func TestGenerateRecommendationsContinuesAfterInsertError(t *testing.T) {
	studentID := uuid.New()
	failing := makeEvent(studentID, "Failing")
	healthy := makeEvent(studentID, "Healthy")
	sp := makeSponsor(uuid.New(), "Acme")

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"
	repo.insertErrOn[pairKey{failing.ID, sp.ID}] = errors.New("disk full")

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: {failing, healthy}}},
		&fakeSponsorRepo{all: []sponsorEntity.Sponsor{sp}},
		&fixedScorer{score: 90}, nil,
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), studentID)
	if appErr != nil {
		t.Fatalf("a single pairing failure must not abort the run, got %v", appErr)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("expected the healthy pairing to persist, got %d", len(result.Recommendations))
	}
	if result.Recommendations[0].EventID != healthy.ID {
		t.Fatalf("wrong pairing persisted")
	}
}

func TestGenerateRecommendationsRoleMissing(t *testing.T) {
	repo := newFakeRecommendationRepo()
	svc := NewMatchmakingService(repo, &fakeEventRepo{}, &fakeSponsorRepo{}, &fixedScorer{score: 90}, nil)

	_, appErr := svc.GenerateRecommendations(context.Background(), uuid.New())
	if appErr == nil || appErr.Code != coreErrors.ErrRoleNotFound {
		t.Fatalf("expected role-not-found error, got %v", appErr)
	}
}

func TestGenerateRecommendationsSponsorRole(t *testing.T) {
	sponsorUserID := uuid.New()
	sp := makeSponsor(sponsorUserID, "Acme")
	events := []eventEntity.Event{makeEvent(uuid.New(), "Hackathon"), makeEvent(uuid.New(), "Gala")}

	repo := newFakeRecommendationRepo()
	repo.roles[sponsorUserID] = "sponsor"

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{all: events},
		&fakeSponsorRepo{byUser: map[uuid.UUID]*sponsorEntity.Sponsor{sponsorUserID: &sp}, all: []sponsorEntity.Sponsor{sp}},
		&fixedScorer{score: 90}, nil,
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), sponsorUserID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(result.Recommendations))
	}
	if result.Message != "Generated 2 new event recommendations" {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestGenerateRecommendationsSponsorWithoutProfile(t *testing.T) {
	sponsorUserID := uuid.New()

	repo := newFakeRecommendationRepo()
	repo.roles[sponsorUserID] = "sponsor"

	svc := NewMatchmakingService(repo, &fakeEventRepo{}, &fakeSponsorRepo{byUser: map[uuid.UUID]*sponsorEntity.Sponsor{}}, &fixedScorer{score: 90}, nil)

	_, appErr := svc.GenerateRecommendations(context.Background(), sponsorUserID)
	if appErr == nil || appErr.Code != coreErrors.ErrNotFound {
		t.Fatalf("expected not-found error, got %v", appErr)
	}
}

func TestGenerateRecommendationsNotifierFailureIsNonFatal(t *testing.T) {
	studentID := uuid.New()
	event := makeEvent(studentID, "Hackathon")
	sp := makeSponsor(uuid.New(), "Acme")

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: {event}}},
		&fakeSponsorRepo{all: []sponsorEntity.Sponsor{sp}},
		&fixedScorer{score: 90},
		&fakeNotifier{err: errors.New("smtp down")},
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), studentID)
	if appErr != nil {
		t.Fatalf("notification failure must not fail generation, got %v", appErr)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("expected the recommendation to persist, got %d", len(result.Recommendations))
	}
}

func TestGenerateRecommendationsMismatchedPairNotPersisted(t *testing.T) {
	studentID := uuid.New()

	category := "sports"
	description := "a small gathering"
	eventLocation := "Fairbanks"
	eventBudget := "$500 - $1,000"
	audience := 10
	event := makeEvent(studentID, "Community Meetup")
	event.Category = &category
	event.Description = &description
	event.Location = &eventLocation
	event.BudgetRange = &eventBudget
	event.AudienceSize = &audience

	industry := "Finance"
	sponsorLocation := "Miami"
	sponsorBudget := "$25,000+"
	goals := "exposure"
	demographics := `["Retirees"]`
	sp := makeSponsor(uuid.New(), "Vault Holdings")
	sp.Industry = &industry
	sp.Location = &sponsorLocation
	sp.BudgetRange = &sponsorBudget
	sp.MarketingGoals = &goals
	sp.TargetDemographics = &demographics

	repo := newFakeRecommendationRepo()
	repo.roles[studentID] = "student"

	svc := NewMatchmakingService(repo,
		&fakeEventRepo{byOrganizer: map[uuid.UUID][]eventEntity.Event{studentID: {event}}},
		&fakeSponsorRepo{all: []sponsorEntity.Sponsor{sp}},
		NewDeterministicScorer(DefaultScoringConfig()),
		nil,
	)

	result, appErr := svc.GenerateRecommendations(context.Background(), studentID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Recommendations) != 0 || len(repo.inserted) != 0 {
		t.Fatalf("expected nothing persisted for a non-qualifying pair, got %d recommendations and %d inserts",
			len(result.Recommendations), len(repo.inserted))
	}
	if result.Message != "Generated 0 new sponsor recommendations" {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestGetSingleMatchUnknownPairReturnsNull(t *testing.T) {
	repo := newFakeRecommendationRepo()
	svc := NewMatchmakingService(repo, &fakeEventRepo{}, &fakeSponsorRepo{}, &fixedScorer{}, nil)

	result, appErr := svc.GetSingleMatch(context.Background(), uuid.New(), uuid.New())
	if appErr != nil {
		t.Fatalf("expected success for unknown pair, got %v", appErr)
	}
	if result == nil {
		t.Fatal("expected a response envelope")
	}
	if result.Recommendation != nil {
		t.Fatalf("expected null recommendation, got %+v", result.Recommendation)
	}
}

func TestGetSingleMatchFound(t *testing.T) {
	eventID := uuid.New()
	sponsorID := uuid.New()

	repo := newFakeRecommendationRepo()
	repo.details[pairKey{eventID, sponsorID}] = &entity.RecommendationDetail{
		Recommendation: entity.Recommendation{
			ID:      uuid.New(),
			EventID: eventID, SponsorID: sponsorID,
			MatchScore: 72,
			Status:     entity.RecommendationStatusPending,
		},
		EventTitle:     "Tech Summit",
		SponsorCompany: "Acme Corp",
	}

	svc := NewMatchmakingService(repo, &fakeEventRepo{}, &fakeSponsorRepo{}, &fixedScorer{}, nil)

	result, appErr := svc.GetSingleMatch(context.Background(), eventID, sponsorID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Recommendation == nil {
		t.Fatal("expected a recommendation")
	}
	if result.Recommendation.MatchScore != 72 || result.Recommendation.EventTitle != "Tech Summit" {
		t.Fatalf("unexpected recommendation: %+v", result.Recommendation)
	}
}

func TestUpdateMatchStatus(t *testing.T) {
	eventID := uuid.New()
	sponsorID := uuid.New()

	repo := newFakeRecommendationRepo()
	repo.existing[pairKey{eventID, sponsorID}] = &entity.Recommendation{
		ID:      uuid.New(),
		EventID: eventID, SponsorID: sponsorID,
		Status: entity.RecommendationStatusPending,
	}

	svc := NewMatchmakingService(repo, &fakeEventRepo{}, &fakeSponsorRepo{}, &fixedScorer{}, nil)

	status := "interested"
	starred := true
	result, appErr := svc.UpdateMatchStatus(context.Background(), uuid.New(), eventID, sponsorID, &status, &starred, nil)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Status != entity.RecommendationStatusInterested {
		t.Fatalf("expected status interested, got %s", result.Status)
	}
	if !result.IsStarred {
		t.Fatalf("expected starred flag set")
	}
	if len(repo.history) != 1 || repo.history[0].Action != entity.HistoryActionStatusUpdated {
		t.Fatalf("expected a status_updated history row")
	}
}

func TestUpdateMatchStatusValidation(t *testing.T) {
	repo := newFakeRecommendationRepo()
	svc := NewMatchmakingService(repo, &fakeEventRepo{}, &fakeSponsorRepo{}, &fixedScorer{}, nil)

	bad := "archived"
	_, appErr := svc.UpdateMatchStatus(context.Background(), uuid.New(), uuid.New(), uuid.New(), &bad, nil, nil)
	if appErr == nil || appErr.Code != coreErrors.ErrInvalidInput {
		t.Fatalf("expected invalid-input error for unknown status, got %v", appErr)
	}

	_, appErr = svc.UpdateMatchStatus(context.Background(), uuid.New(), uuid.New(), uuid.New(), nil, nil, nil)
	if appErr == nil || appErr.Code != coreErrors.ErrInvalidInput {
		t.Fatalf("expected invalid-input error for empty update, got %v", appErr)
	}

	good := "contacted"
	_, appErr = svc.UpdateMatchStatus(context.Background(), uuid.New(), uuid.New(), uuid.New(), &good, nil, nil)
	if appErr == nil || appErr.Code != coreErrors.ErrNotFound {
		t.Fatalf("expected not-found error for unknown pairing, got %v", appErr)
	}
}
