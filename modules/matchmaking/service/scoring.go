package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Factor names used in the persisted factors map and in API responses
const (
	FactorThemeCompatibility  = "theme_compatibility"
	FactorAudienceAlignment   = "audience_alignment"
	FactorBudgetCompatibility = "budget_compatibility"
	FactorGeographicProximity = "geographic_proximity"
	FactorIndustryPreferences = "industry_preferences"
	FactorMarketingAlignment  = "marketing_alignment"
)

// EventProfile is the normalized event view consumed by scorers. Absent
// attributes are zero values; factor functions treat them as unknown.
type EventProfile struct {
	ID                uuid.UUID
	Title             string
	Category          string
	Description       string
	Location          string
	BudgetRange       string
	AudienceSize      int
	EventDate         string
	EngagementMetrics map[string]any
}

// SponsorProfile is the normalized sponsor view consumed by scorers.
// TargetDemographics is nil when the sponsor never provided any.
type SponsorProfile struct {
	ID                 uuid.UUID
	CompanyName        string
	Industry           string
	Location           string
	BudgetRange        string
	MarketingGoals     string
	TargetDemographics []string
}

// MatchResult is the output of any scorer implementation
type MatchResult struct {
	Score     int            `json:"score"`
	Reasoning string         `json:"reasoning"`
	Factors   map[string]int `json:"factors"`
	Insights  string         `json:"insights"`
}

// MatchScorer computes a compatibility result for an (event, sponsor)
// pair. Implementations must always return a usable result; the
// model-backed implementation falls back to the deterministic one
// internally rather than surfacing errors.
type MatchScorer interface {
	Score(ctx context.Context, event EventProfile, sponsor SponsorProfile) MatchResult
}

// FactorWeights are the relative weights of the six factors. They must
// sum to 1.0.
type FactorWeights struct {
	ThemeCompatibility  float64
	AudienceAlignment   float64
	BudgetCompatibility float64
	GeographicProximity float64
	IndustryPreferences float64
	MarketingAlignment  float64
}

// Sum returns the total of all six weights
func (w FactorWeights) Sum() float64 {
	return w.ThemeCompatibility + w.AudienceAlignment + w.BudgetCompatibility +
		w.GeographicProximity + w.IndustryPreferences + w.MarketingAlignment
}

// KeywordGroup pairs a set of related marketing keywords with the bonus
// granted when one of them appears in both the sponsor's goals and the
// event's description.
type KeywordGroup struct {
	Keywords []string
	Weight   int
}

// ScoringConfig holds every table and constant the deterministic scorer
// uses, kept as data so weights and compatibility tables can change
// without touching the scoring logic.
type ScoringConfig struct {
	BaseScore float64
	Weights   FactorWeights

	// CompatibilityMatrix maps lowercased event categories to industry
	// compatibility scores.
	CompatibilityMatrix map[string]map[string]int

	// BudgetRanges is the ordered bucket list; index distance drives the
	// budget factor.
	BudgetRanges []string

	// ReferenceDemographics are the common student-audience labels a
	// sponsor's target demographics are matched against.
	ReferenceDemographics []string

	// IndustryPreferences maps an industry to event-category keywords it
	// is known to favor.
	IndustryPreferences map[string][]string

	KeywordGroups []KeywordGroup
}

// DefaultScoringConfig returns the standard production tables
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore: 40,
		Weights: FactorWeights{
			ThemeCompatibility:  0.25,
			AudienceAlignment:   0.20,
			BudgetCompatibility: 0.20,
			GeographicProximity: 0.15,
			IndustryPreferences: 0.10,
			MarketingAlignment:  0.10,
		},
		CompatibilityMatrix: map[string]map[string]int{
			"technology": {"Technology": 95, "Finance": 75, "Healthcare": 70, "Education": 85},
			"business":   {"Finance": 90, "Technology": 80, "Consulting": 95, "Real Estate": 75},
			"cultural":   {"Media & Entertainment": 90, "Arts": 95, "Tourism": 85, "Food & Beverage": 80},
			"sports":     {"Sports": 95, "Healthcare": 80, "Energy": 70, "Retail": 75},
			"academic":   {"Education": 95, "Technology": 85, "Healthcare": 80, "Research": 90},
		},
		BudgetRanges: []string{
			"$500 - $1,000",
			"$1,000 - $2,500",
			"$2,500 - $5,000",
			"$5,000 - $10,000",
			"$10,000 - $25,000",
			"$25,000+",
		},
		ReferenceDemographics: []string{"College Students", "Young Professionals", "Tech Enthusiasts"},
		IndustryPreferences: map[string][]string{
			"Technology":            {"technology", "academic", "workshop", "conference"},
			"Finance":               {"business", "academic", "networking", "conference"},
			"Healthcare":            {"academic", "sports", "wellness", "research"},
			"Education":             {"academic", "workshop", "conference", "cultural"},
			"Media & Entertainment": {"cultural", "arts", "music", "sports"},
		},
		KeywordGroups: []KeywordGroup{
			{Keywords: []string{"brand awareness", "visibility", "exposure"}, Weight: 20},
			{Keywords: []string{"networking", "community", "engagement"}, Weight: 15},
			{Keywords: []string{"innovation", "technology", "future"}, Weight: 15},
			{Keywords: []string{"education", "learning", "development"}, Weight: 10},
			{Keywords: []string{"leadership", "professional", "career"}, Weight: 10},
		},
	}
}

// DeterministicScorer is the rule-based, always-available scoring path.
// Identical inputs always yield identical output.
type DeterministicScorer struct {
	cfg ScoringConfig
}

// NewDeterministicScorer creates a scorer over the given tables
func NewDeterministicScorer(cfg ScoringConfig) *DeterministicScorer {
	return &DeterministicScorer{cfg: cfg}
}

// Score combines the six factor scores into a weighted 0-100 result with
// templated reasoning. Pure and side-effect free.
func (s *DeterministicScorer) Score(_ context.Context, event EventProfile, sponsor SponsorProfile) MatchResult {
	score := s.cfg.BaseScore
	factors := map[string]int{
		FactorThemeCompatibility:  50,
		FactorAudienceAlignment:   50,
		FactorBudgetCompatibility: 50,
		FactorGeographicProximity: 50,
		FactorIndustryPreferences: 50,
		FactorMarketingAlignment:  50,
	}

	// Each factor is computed only when its inputs are present; an
	// unknown factor stays at the 50 midpoint and contributes nothing.
	if event.Category != "" && sponsor.Industry != "" {
		v := s.themeCompatibility(event.Category, sponsor.Industry)
		factors[FactorThemeCompatibility] = v
		score += float64(v-50) * s.cfg.Weights.ThemeCompatibility
	}

	if event.AudienceSize > 0 && sponsor.TargetDemographics != nil {
		v := s.audienceAlignment(event.AudienceSize, sponsor.TargetDemographics)
		factors[FactorAudienceAlignment] = v
		score += float64(v-50) * s.cfg.Weights.AudienceAlignment
	}

	if event.BudgetRange != "" && sponsor.BudgetRange != "" {
		v := s.budgetCompatibility(event.BudgetRange, sponsor.BudgetRange)
		factors[FactorBudgetCompatibility] = v
		score += float64(v-50) * s.cfg.Weights.BudgetCompatibility
	}

	if event.Location != "" && sponsor.Location != "" {
		v := s.geographicProximity(event.Location, sponsor.Location)
		factors[FactorGeographicProximity] = v
		score += float64(v-50) * s.cfg.Weights.GeographicProximity
	}

	if sponsor.Industry != "" && event.Category != "" {
		v := s.industryPreference(sponsor.Industry, event.Category)
		factors[FactorIndustryPreferences] = v
		score += float64(v-50) * s.cfg.Weights.IndustryPreferences
	}

	if sponsor.MarketingGoals != "" && event.Description != "" {
		v := s.marketingAlignment(sponsor.MarketingGoals, event.Description)
		factors[FactorMarketingAlignment] = v
		score += float64(v-50) * s.cfg.Weights.MarketingAlignment
	}

	score = math.Min(100, math.Max(0, score))
	final := int(math.Round(score))

	return MatchResult{
		Score:     final,
		Reasoning: s.buildReasoning(final, factors),
		Factors:   factors,
		Insights:  s.buildInsights(final),
	}
}

// themeCompatibility scores event category against sponsor industry via
// the compatibility matrix, falling back to keyword overlap on a miss.
func (s *DeterministicScorer) themeCompatibility(category, industry string) int {
	categoryLower := strings.ToLower(category)

	if industryScores, ok := s.cfg.CompatibilityMatrix[categoryLower]; ok {
		if v, ok := industryScores[industry]; ok {
			return v
		}
	}

	categoryWords := strings.Fields(categoryLower)
	industryWords := strings.Fields(strings.ToLower(industry))
	for _, cw := range categoryWords {
		for _, iw := range industryWords {
			if strings.Contains(iw, cw) || strings.Contains(cw, iw) {
				return 75
			}
		}
	}

	return 45
}

// audienceAlignment scores audience size bands plus target-demographic
// overlap with the reference student labels, capped at 95
func (s *DeterministicScorer) audienceAlignment(audienceSize int, demographics []string) int {
	alignment := 50

	switch {
	case audienceSize >= 1000:
		alignment += 20
	case audienceSize >= 500:
		alignment += 15
	case audienceSize >= 200:
		alignment += 10
	case audienceSize >= 100:
		alignment += 5
	}

	for _, demo := range demographics {
		demoLower := strings.ToLower(demo)
		for _, ref := range s.cfg.ReferenceDemographics {
			refLower := strings.ToLower(ref)
			if strings.Contains(refLower, demoLower) || strings.Contains(demoLower, refLower) {
				alignment += 10
				break
			}
		}
	}

	if alignment > 95 {
		alignment = 95
	}
	return alignment
}

// budgetCompatibility maps both budgets to their bucket index; the index
// distance decides the score. Unknown buckets score the 50 midpoint.
func (s *DeterministicScorer) budgetCompatibility(eventBudget, sponsorBudget string) int {
	eventIndex := -1
	sponsorIndex := -1
	for i, r := range s.cfg.BudgetRanges {
		if r == eventBudget {
			eventIndex = i
		}
		if r == sponsorBudget {
			sponsorIndex = i
		}
	}

	if eventIndex == -1 || sponsorIndex == -1 {
		return 50
	}

	difference := eventIndex - sponsorIndex
	if difference < 0 {
		difference = -difference
	}

	switch difference {
	case 0:
		return 95
	case 1:
		return 80
	case 2:
		return 65
	default:
		return 40
	}
}

// geographicProximity does simplified text matching; proper geocoding is
// a TODO once locations become structured instead of free text
func (s *DeterministicScorer) geographicProximity(eventLocation, sponsorLocation string) int {
	if strings.EqualFold(eventLocation, sponsorLocation) {
		return 95
	}

	eventWords := splitLocation(eventLocation)
	sponsorWords := splitLocation(sponsorLocation)
	for _, ew := range eventWords {
		for _, sw := range sponsorWords {
			if strings.Contains(ew, sw) || strings.Contains(sw, ew) {
				return 80
			}
		}
	}

	return 45
}

func splitLocation(location string) []string {
	return strings.FieldsFunc(strings.ToLower(location), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

// industryPreference checks whether the event category matches one of
// the categories the sponsor's industry is known to favor
func (s *DeterministicScorer) industryPreference(industry, category string) int {
	prefs := s.cfg.IndustryPreferences[industry]
	categoryLower := strings.ToLower(category)

	for _, pref := range prefs {
		if strings.Contains(categoryLower, pref) || strings.Contains(pref, categoryLower) {
			return 85
		}
	}

	return 45
}

// marketingAlignment adds a keyword group's weight when a keyword from
// the group appears in both the goals and the description, capped at 95
func (s *DeterministicScorer) marketingAlignment(marketingGoals, eventDescription string) int {
	goals := strings.ToLower(marketingGoals)
	description := strings.ToLower(eventDescription)

	alignment := 50
	for _, group := range s.cfg.KeywordGroups {
		inGoals := false
		inDescription := false
		for _, kw := range group.Keywords {
			if strings.Contains(goals, kw) {
				inGoals = true
			}
			if strings.Contains(description, kw) {
				inDescription = true
			}
		}
		if inGoals && inDescription {
			alignment += group.Weight
		}
	}

	if alignment > 95 {
		alignment = 95
	}
	return alignment
}

func (s *DeterministicScorer) buildReasoning(score int, factors map[string]int) string {
	var band string
	switch {
	case score > 80:
		band = "Excellent match with strong alignment across multiple factors."
	case score > 65:
		band = "Good match with reasonable compatibility."
	case score > 50:
		band = "Fair match with some alignment potential."
	default:
		band = "Limited compatibility - consider if strategic value exists."
	}

	return fmt.Sprintf(
		"Match score calculated using weighted criteria: theme compatibility (%d%%), audience alignment (%d%%), budget compatibility (%d%%), geographic proximity (%d%%), industry preferences (%d%%), and marketing alignment (%d%%). %s",
		factors[FactorThemeCompatibility],
		factors[FactorAudienceAlignment],
		factors[FactorBudgetCompatibility],
		factors[FactorGeographicProximity],
		factors[FactorIndustryPreferences],
		factors[FactorMarketingAlignment],
		band,
	)
}

func (s *DeterministicScorer) buildInsights(score int) string {
	if score > 75 {
		return "High potential for successful partnership with mutual benefits."
	}
	return "Consider discussing specific collaboration opportunities to maximize value."
}
