package entity

import "time"

// RecommendationDetail is a recommendation joined with the event and
// sponsor attributes the surrounding UI renders
type RecommendationDetail struct {
	Recommendation
	EventTitle      string     `db:"event_title" json:"event_title"`
	EventCategory   *string    `db:"event_category" json:"event_category,omitempty"`
	EventLocation   *string    `db:"event_location" json:"event_location,omitempty"`
	EventDate       *time.Time `db:"event_date" json:"event_date,omitempty"`
	SponsorCompany  string     `db:"sponsor_company" json:"sponsor_company"`
	SponsorIndustry *string    `db:"sponsor_industry" json:"sponsor_industry,omitempty"`
}
