package dto

import (
	"encoding/json"
	"time"

	"sponsorsync-api/modules/matchmaking/entity"

	"github.com/google/uuid"
)

// Dispatch actions accepted by the matchmaking endpoint
const (
	ActionGenerateRecommendations = "generateRecommendations"
	ActionGetSingleMatch          = "getSingleMatch"
	ActionUpdateMatchStatus       = "updateMatchStatus"
)

// MatchRequest is the action-dispatch payload for POST /matchmaking
type MatchRequest struct {
	Action    string     `json:"action" validate:"required"`
	EventID   *uuid.UUID `json:"event_id,omitempty"`
	SponsorID *uuid.UUID `json:"sponsor_id,omitempty"`
	Status    *string    `json:"status,omitempty"`
	IsStarred *bool      `json:"is_starred,omitempty"`
	IsViewed  *bool      `json:"is_viewed,omitempty"`
}

// RecommendationSummary is one generated pairing in a generate response
type RecommendationSummary struct {
	ID         uuid.UUID      `json:"id"`
	Reference  string         `json:"reference"`
	EventID    uuid.UUID      `json:"event_id"`
	SponsorID  uuid.UUID      `json:"sponsor_id"`
	MatchScore int            `json:"match_score"`
	Reasoning  string         `json:"reasoning"`
	Factors    map[string]int `json:"factors"`
	Insights   *string        `json:"insights,omitempty"`
}

// GenerateResponse reports the outcome of a generation run
type GenerateResponse struct {
	Recommendations []RecommendationSummary `json:"recommendations"`
	Message         string                  `json:"message"`
}

// RecommendationResponse is the full API representation of a stored
// recommendation, joined with its event and sponsor context.
type RecommendationResponse struct {
	ID              uuid.UUID                   `json:"id"`
	Reference       string                      `json:"reference"`
	EventID         uuid.UUID                   `json:"event_id"`
	SponsorID       uuid.UUID                   `json:"sponsor_id"`
	MatchScore      int                         `json:"match_score"`
	Reasoning       string                      `json:"reasoning"`
	Factors         map[string]int              `json:"factors"`
	Insights        *string                     `json:"insights,omitempty"`
	Status          entity.RecommendationStatus `json:"status"`
	IsStarred       bool                        `json:"is_starred"`
	IsViewed        bool                        `json:"is_viewed"`
	EventTitle      string                      `json:"event_title,omitempty"`
	EventCategory   *string                     `json:"event_category,omitempty"`
	EventLocation   *string                     `json:"event_location,omitempty"`
	EventDate       *time.Time                  `json:"event_date,omitempty"`
	SponsorCompany  string                      `json:"sponsor_company,omitempty"`
	SponsorIndustry *string                     `json:"sponsor_industry,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// SingleMatchResponse wraps one looked-up recommendation. Recommendation
// is null when no record exists for the requested pair.
type SingleMatchResponse struct {
	Recommendation *RecommendationResponse `json:"recommendation"`
}

// ToRecommendationSummary maps a stored recommendation to its generate
// response shape
func ToRecommendationSummary(rec *entity.Recommendation) RecommendationSummary {
	return RecommendationSummary{
		ID:         rec.ID,
		Reference:  rec.Reference,
		EventID:    rec.EventID,
		SponsorID:  rec.SponsorID,
		MatchScore: rec.MatchScore,
		Reasoning:  rec.Reasoning,
		Factors:    parseFactors(rec.Factors),
		Insights:   rec.Insights,
	}
}

// ToRecommendationResponse maps a joined detail row
func ToRecommendationResponse(detail *entity.RecommendationDetail) *RecommendationResponse {
	if detail == nil {
		return nil
	}
	return &RecommendationResponse{
		ID:              detail.ID,
		Reference:       detail.Reference,
		EventID:         detail.EventID,
		SponsorID:       detail.SponsorID,
		MatchScore:      detail.MatchScore,
		Reasoning:       detail.Reasoning,
		Factors:         parseFactors(detail.Factors),
		Insights:        detail.Insights,
		Status:          detail.Status,
		IsStarred:       detail.IsStarred,
		IsViewed:        detail.IsViewed,
		EventTitle:      detail.EventTitle,
		EventCategory:   detail.EventCategory,
		EventLocation:   detail.EventLocation,
		EventDate:       detail.EventDate,
		SponsorCompany:  detail.SponsorCompany,
		SponsorIndustry: detail.SponsorIndustry,
		CreatedAt:       detail.CreatedAt,
		UpdatedAt:       detail.UpdatedAt,
	}
}

// ToRecommendationResponses maps a slice of joined detail rows
func ToRecommendationResponses(details []entity.RecommendationDetail) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(details))
	for i := range details {
		out = append(out, *ToRecommendationResponse(&details[i]))
	}
	return out
}

func parseFactors(raw string) map[string]int {
	if raw == "" {
		return nil
	}
	var factors map[string]int
	if err := json.Unmarshal([]byte(raw), &factors); err != nil {
		return nil
	}
	return factors
}
