package service

import (
	"context"
	"encoding/json"
	"fmt"

	"sponsorsync-api/core/constants"
	"sponsorsync-api/core/errors"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/utils"
	eventEntity "sponsorsync-api/modules/event/entity"
	eventRepository "sponsorsync-api/modules/event/repository"
	"sponsorsync-api/modules/matchmaking/dto"
	"sponsorsync-api/modules/matchmaking/entity"
	"sponsorsync-api/modules/matchmaking/repository"
	notificationDto "sponsorsync-api/modules/notification/dto"
	notificationEntity "sponsorsync-api/modules/notification/entity"
	sponsorEntity "sponsorsync-api/modules/sponsor/entity"
	sponsorRepository "sponsorsync-api/modules/sponsor/repository"

	"github.com/google/uuid"
)

// Notifier is the slice of the notification service the matchmaking flow
// uses. Notification failures never fail a match operation.
type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) error
}

// MatchmakingService generates and manages event-sponsor recommendations
type MatchmakingService struct {
	repo        repository.RecommendationRepositoryInterface
	eventRepo   eventRepository.EventRepositoryInterface
	sponsorRepo sponsorRepository.SponsorRepositoryInterface
	scorer      MatchScorer
	notifier    Notifier
}

// NewMatchmakingService creates a new service instance. notifier may be
// nil when no notification sink is wired.
func NewMatchmakingService(
	repo repository.RecommendationRepositoryInterface,
	eventRepo eventRepository.EventRepositoryInterface,
	sponsorRepo sponsorRepository.SponsorRepositoryInterface,
	scorer MatchScorer,
	notifier Notifier,
) *MatchmakingService {
	return &MatchmakingService{
		repo:        repo,
		eventRepo:   eventRepo,
		sponsorRepo: sponsorRepo,
		scorer:      scorer,
		notifier:    notifier,
	}
}

// MatchmakingServiceInterface defines the service contract
type MatchmakingServiceInterface interface {
	GenerateRecommendations(ctx context.Context, userID uuid.UUID) (*dto.GenerateResponse, *errors.AppError)
	GetSingleMatch(ctx context.Context, eventID, sponsorID uuid.UUID) (*dto.SingleMatchResponse, *errors.AppError)
	UpdateMatchStatus(ctx context.Context, userID, eventID, sponsorID uuid.UUID, status *string, isStarred, isViewed *bool) (*dto.RecommendationResponse, *errors.AppError)
	ListRecommendations(ctx context.Context, userID uuid.UUID) ([]dto.RecommendationResponse, *errors.AppError)
}

// GenerateRecommendations scores every unscored (event, sponsor) pairing
// visible to the caller and persists the ones above the qualifying
// threshold. A failure on one pairing never aborts the others.
func (s *MatchmakingService) GenerateRecommendations(ctx context.Context, userID uuid.UUID) (*dto.GenerateResponse, *errors.AppError) {
	role, err := s.repo.GetUserRole(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to resolve user role", err)
	}
	if role == "" {
		return nil, errors.NewAppError(errors.ErrRoleNotFound, "User role not found", nil)
	}

	var (
		events   []eventEntity.Event
		sponsors []sponsorEntity.Sponsor
	)

	switch role {
	case constants.RoleStudent:
		events, err = s.eventRepo.GetEventsByOrganizerID(ctx, userID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load events", err)
		}
		sponsors, err = s.sponsorRepo.GetAllSponsors(ctx)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load sponsors", err)
		}
	case constants.RoleSponsor:
		sponsor, err := s.sponsorRepo.GetSponsorByUserID(ctx, userID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load sponsor profile", err)
		}
		if sponsor == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Sponsor profile not found", nil)
		}
		sponsors = []sponsorEntity.Sponsor{*sponsor}
		events, err = s.eventRepo.GetAllEvents(ctx)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load events", err)
		}
	default:
		return nil, errors.NewAppError(errors.ErrRoleNotFound, fmt.Sprintf("Unknown user role: %s", role), nil)
	}

	summaries := make([]dto.RecommendationSummary, 0)

	for i := range events {
		event := &events[i]
		for j := range sponsors {
			sponsor := &sponsors[j]

			existing, err := s.repo.GetByPair(ctx, event.ID, sponsor.ID)
			if err != nil {
				logger.Error("MatchmakingService:GenerateRecommendations:GetByPair", err)
				continue
			}
			if existing != nil {
				continue
			}

			result := s.scorer.Score(ctx, eventToProfile(event), sponsorToProfile(sponsor))
			if result.Score <= constants.MinQualifyingScore {
				continue
			}

			rec, appErr := s.persistRecommendation(ctx, userID, event, sponsor, result)
			if appErr != nil {
				logger.Error("MatchmakingService:GenerateRecommendations:Persist", appErr)
				continue
			}
			if rec == nil {
				// Another run inserted this pairing first.
				continue
			}

			summaries = append(summaries, dto.ToRecommendationSummary(rec))
		}
	}

	noun := "sponsor"
	if role == constants.RoleSponsor {
		noun = "event"
	}

	return &dto.GenerateResponse{
		Recommendations: summaries,
		Message:         fmt.Sprintf("Generated %d new %s recommendations", len(summaries), noun),
	}, nil
}

func (s *MatchmakingService) persistRecommendation(ctx context.Context, actorID uuid.UUID, event *eventEntity.Event, sponsor *sponsorEntity.Sponsor, result MatchResult) (*entity.Recommendation, *errors.AppError) {
	factors, err := json.Marshal(result.Factors)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to encode factors", err)
	}

	rec := &entity.Recommendation{
		Reference:  utils.GenerateID(),
		EventID:    event.ID,
		SponsorID:  sponsor.ID,
		MatchScore: result.Score,
		Reasoning:  result.Reasoning,
		Factors:    string(factors),
		Status:     entity.RecommendationStatusPending,
	}
	if result.Insights != "" {
		rec.Insights = &result.Insights
	}

	inserted, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to insert recommendation", err)
	}
	if inserted == nil {
		return nil, nil
	}

	s.recordHistory(ctx, actorID, &inserted.ID, entity.HistoryActionGenerated, map[string]any{
		"match_score": inserted.MatchScore,
	})
	s.notifyMatch(ctx, event, sponsor, inserted)

	return inserted, nil
}

// notifyMatch tells both sides about a fresh recommendation. Best effort.
func (s *MatchmakingService) notifyMatch(ctx context.Context, event *eventEntity.Event, sponsor *sponsorEntity.Sponsor, rec *entity.Recommendation) {
	if s.notifier == nil {
		return
	}

	data := map[string]any{
		"recommendation_id": rec.ID.String(),
		"reference":         rec.Reference,
		"match_score":       rec.MatchScore,
	}

	organizerNote := &notificationDto.CreateNotificationRequest{
		UserID:  event.OrganizerID,
		Title:   "New sponsor match",
		Message: fmt.Sprintf("%s is a %d%% match for %s", sponsor.CompanyName, rec.MatchScore, event.Title),
		Type:    notificationEntity.TypeMatchRecommendation,
		Data:    data,
	}
	if err := s.notifier.Create(ctx, organizerNote); err != nil {
		logger.Error("MatchmakingService:notifyMatch", err)
	}

	sponsorNote := &notificationDto.CreateNotificationRequest{
		UserID:  sponsor.UserID,
		Title:   "New event match",
		Message: fmt.Sprintf("%s is a %d%% match for %s", event.Title, rec.MatchScore, sponsor.CompanyName),
		Type:    notificationEntity.TypeMatchRecommendation,
		Data:    data,
	}
	if err := s.notifier.Create(ctx, sponsorNote); err != nil {
		logger.Error("MatchmakingService:notifyMatch", err)
	}
}

func (s *MatchmakingService) recordHistory(ctx context.Context, actorID uuid.UUID, recID *uuid.UUID, action string, metadata map[string]any) {
	var meta *string
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			str := string(raw)
			meta = &str
		}
	}

	h := &entity.MatchHistory{
		RecommendationID: recID,
		ActorID:          actorID,
		Action:           action,
		Metadata:         meta,
	}
	if err := s.repo.InsertHistory(ctx, h); err != nil {
		logger.Error("MatchmakingService:recordHistory", err)
	}
}

// GetSingleMatch returns one recommendation with its joined event and
// sponsor context. A pair that was never scored is not an error: the
// response carries a null recommendation.
func (s *MatchmakingService) GetSingleMatch(ctx context.Context, eventID, sponsorID uuid.UUID) (*dto.SingleMatchResponse, *errors.AppError) {
	detail, err := s.repo.GetDetailByPair(ctx, eventID, sponsorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get match", err)
	}
	return &dto.SingleMatchResponse{Recommendation: dto.ToRecommendationResponse(detail)}, nil
}

// UpdateMatchStatus applies a partial update to a recommendation's
// status, starred and viewed flags
func (s *MatchmakingService) UpdateMatchStatus(ctx context.Context, userID, eventID, sponsorID uuid.UUID, status *string, isStarred, isViewed *bool) (*dto.RecommendationResponse, *errors.AppError) {
	if status == nil && isStarred == nil && isViewed == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "No fields to update", nil)
	}
	if status != nil && !entity.RecommendationStatus(*status).IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Invalid status: %s", *status), nil)
	}

	updated, err := s.repo.UpdateStatusFields(ctx, eventID, sponsorID, status, isStarred, isViewed)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update match", err)
	}
	if updated == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Match not found", nil)
	}

	metadata := map[string]any{}
	if status != nil {
		metadata["status"] = *status
	}
	if isStarred != nil {
		metadata["is_starred"] = *isStarred
	}
	if isViewed != nil {
		metadata["is_viewed"] = *isViewed
	}
	s.recordHistory(ctx, userID, &updated.ID, entity.HistoryActionStatusUpdated, metadata)

	detail, err := s.repo.GetDetailByPair(ctx, eventID, sponsorID)
	if err != nil || detail == nil {
		// The update succeeded; fall back to the bare row.
		return &dto.RecommendationResponse{
			ID:         updated.ID,
			Reference:  updated.Reference,
			EventID:    updated.EventID,
			SponsorID:  updated.SponsorID,
			MatchScore: updated.MatchScore,
			Reasoning:  updated.Reasoning,
			Insights:   updated.Insights,
			Status:     updated.Status,
			IsStarred:  updated.IsStarred,
			IsViewed:   updated.IsViewed,
			CreatedAt:  updated.CreatedAt,
			UpdatedAt:  updated.UpdatedAt,
		}, nil
	}
	return dto.ToRecommendationResponse(detail), nil
}

// ListRecommendations returns the caller's recommendations, resolved by
// role: organizers see matches for their events, sponsors see matches
// for their profile.
func (s *MatchmakingService) ListRecommendations(ctx context.Context, userID uuid.UUID) ([]dto.RecommendationResponse, *errors.AppError) {
	role, err := s.repo.GetUserRole(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to resolve user role", err)
	}

	var details []entity.RecommendationDetail
	switch role {
	case constants.RoleStudent:
		details, err = s.repo.ListForOrganizer(ctx, userID)
	case constants.RoleSponsor:
		details, err = s.repo.ListForSponsorUser(ctx, userID)
	case "":
		return nil, errors.NewAppError(errors.ErrRoleNotFound, "User role not found", nil)
	default:
		return nil, errors.NewAppError(errors.ErrRoleNotFound, fmt.Sprintf("Unknown user role: %s", role), nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list recommendations", err)
	}

	return dto.ToRecommendationResponses(details), nil
}

// eventToProfile normalizes a stored event for scoring. Optional columns
// become zero values so scorers can gate on presence.
func eventToProfile(event *eventEntity.Event) EventProfile {
	profile := EventProfile{
		ID:    event.ID,
		Title: event.Title,
	}
	if event.Category != nil {
		profile.Category = *event.Category
	}
	if event.Description != nil {
		profile.Description = *event.Description
	}
	if event.Location != nil {
		profile.Location = *event.Location
	}
	if event.BudgetRange != nil {
		profile.BudgetRange = *event.BudgetRange
	}
	if event.AudienceSize != nil {
		profile.AudienceSize = *event.AudienceSize
	}
	if event.EventDate != nil {
		profile.EventDate = event.EventDate.Format("2006-01-02")
	}
	if event.EngagementMetrics != nil {
		var metrics map[string]any
		if err := json.Unmarshal([]byte(*event.EngagementMetrics), &metrics); err == nil {
			profile.EngagementMetrics = metrics
		}
	}
	return profile
}

// sponsorToProfile normalizes a stored sponsor for scoring
func sponsorToProfile(sponsor *sponsorEntity.Sponsor) SponsorProfile {
	profile := SponsorProfile{
		ID:          sponsor.ID,
		CompanyName: sponsor.CompanyName,
	}
	if sponsor.Industry != nil {
		profile.Industry = *sponsor.Industry
	}
	if sponsor.Location != nil {
		profile.Location = *sponsor.Location
	}
	if sponsor.BudgetRange != nil {
		profile.BudgetRange = *sponsor.BudgetRange
	}
	if sponsor.MarketingGoals != nil {
		profile.MarketingGoals = *sponsor.MarketingGoals
	}
	if sponsor.TargetDemographics != nil {
		var demographics []string
		if err := json.Unmarshal([]byte(*sponsor.TargetDemographics), &demographics); err == nil {
			profile.TargetDemographics = demographics
		}
	}
	return profile
}
