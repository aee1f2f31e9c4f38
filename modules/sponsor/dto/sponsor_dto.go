package dto

import (
	"time"

	"sponsorsync-api/modules/sponsor/entity"

	"github.com/google/uuid"
)

// CreateSponsorRequest is the payload for creating a sponsor profile
type CreateSponsorRequest struct {
	CompanyName        string   `json:"company_name" validate:"required"`
	Industry           *string  `json:"industry,omitempty"`
	Location           *string  `json:"location,omitempty"`
	BudgetRange        *string  `json:"budget_range,omitempty"`
	MarketingGoals     *string  `json:"marketing_goals,omitempty"`
	TargetDemographics []string `json:"target_demographics,omitempty"`
}

// UpdateSponsorRequest is the payload for updating a sponsor profile. Nil
// fields keep their current value.
type UpdateSponsorRequest struct {
	CompanyName        *string  `json:"company_name,omitempty"`
	Industry           *string  `json:"industry,omitempty"`
	Location           *string  `json:"location,omitempty"`
	BudgetRange        *string  `json:"budget_range,omitempty"`
	MarketingGoals     *string  `json:"marketing_goals,omitempty"`
	TargetDemographics []string `json:"target_demographics,omitempty"`
}

// SponsorResponse is the API representation of a sponsor profile
type SponsorResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	Industry           *string   `json:"industry,omitempty"`
	Location           *string   `json:"location,omitempty"`
	BudgetRange        *string   `json:"budget_range,omitempty"`
	MarketingGoals     *string   `json:"marketing_goals,omitempty"`
	TargetDemographics *string   `json:"target_demographics,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToSponsorResponse maps an entity to its API representation
func ToSponsorResponse(sponsor *entity.Sponsor) *SponsorResponse {
	if sponsor == nil {
		return nil
	}
	return &SponsorResponse{
		ID:                 sponsor.ID,
		UserID:             sponsor.UserID,
		CompanyName:        sponsor.CompanyName,
		Industry:           sponsor.Industry,
		Location:           sponsor.Location,
		BudgetRange:        sponsor.BudgetRange,
		MarketingGoals:     sponsor.MarketingGoals,
		TargetDemographics: sponsor.TargetDemographics,
		CreatedAt:          sponsor.CreatedAt,
		UpdatedAt:          sponsor.UpdatedAt,
	}
}

// ToSponsorResponses maps a slice of entities
func ToSponsorResponses(sponsors []entity.Sponsor) []SponsorResponse {
	out := make([]SponsorResponse, 0, len(sponsors))
	for i := range sponsors {
		out = append(out, *ToSponsorResponse(&sponsors[i]))
	}
	return out
}
