package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sponsor represents a company profile seeking event partnerships. Each
// sponsor-role user owns exactly one profile (user_id is unique).
type Sponsor struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	UserID             uuid.UUID `db:"user_id" json:"user_id"`
	CompanyName        string    `db:"company_name" json:"company_name"`
	Industry           *string   `db:"industry" json:"industry,omitempty"`
	Location           *string   `db:"location" json:"location,omitempty"`
	BudgetRange        *string   `db:"budget_range" json:"budget_range,omitempty"`
	MarketingGoals     *string   `db:"marketing_goals" json:"marketing_goals,omitempty"`
	TargetDemographics *string   `db:"target_demographics" json:"target_demographics,omitempty"` // JSONB string array
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
