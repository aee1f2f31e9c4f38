package service

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
)

func fullEvent() EventProfile {
	return EventProfile{
		Title:        "Tech Summit",
		Category:     "Technology",
		Description:  "innovation and technology conference with networking and community engagement",
		Location:     "Austin, TX",
		BudgetRange:  "$5,000 - $10,000",
		AudienceSize: 1200,
	}
}

func fullSponsor() SponsorProfile {
	return SponsorProfile{
		CompanyName:        "Acme Corp",
		Industry:           "Technology",
		Location:           "Austin, TX",
		BudgetRange:        "$5,000 - $10,000",
		MarketingGoals:     "brand awareness and networking, innovation",
		TargetDemographics: []string{"College Students"},
	}
}

func mismatchedEvent() EventProfile {
	return EventProfile{
		Category:     "sports",
		Description:  "a small gathering",
		Location:     "Fairbanks",
		BudgetRange:  "$500 - $1,000",
		AudienceSize: 10,
	}
}

func mismatchedSponsor() SponsorProfile {
	return SponsorProfile{
		Industry:           "Finance",
		Location:           "Miami",
		BudgetRange:        "$25,000+",
		MarketingGoals:     "exposure",
		TargetDemographics: []string{"Retirees"},
	}
}

func TestDeterministicScorerFullProfile(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	result := scorer.Score(context.Background(), fullEvent(), fullSponsor())

	if result.Score != 80 {
		t.Fatalf("expected score 80, got %d", result.Score)
	}

	expected := map[string]int{
		FactorThemeCompatibility:  95,
		FactorAudienceAlignment:   80,
		FactorBudgetCompatibility: 95,
		FactorGeographicProximity: 95,
		FactorIndustryPreferences: 85,
		FactorMarketingAlignment:  80,
	}
	if !reflect.DeepEqual(result.Factors, expected) {
		t.Fatalf("unexpected factors: %v", result.Factors)
	}

	if !strings.Contains(result.Reasoning, "theme compatibility (95%)") {
		t.Fatalf("reasoning missing factor breakdown: %s", result.Reasoning)
	}
	if !strings.Contains(result.Reasoning, "Good match") {
		t.Fatalf("expected good-match band for score 80, got: %s", result.Reasoning)
	}
	if !strings.Contains(result.Insights, "High potential") {
		t.Fatalf("expected high-potential insights for score > 75, got: %s", result.Insights)
	}
}

func TestDeterministicScorerEmptyProfiles(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	result := scorer.Score(context.Background(), EventProfile{Title: "Bare"}, SponsorProfile{CompanyName: "Bare"})

	if result.Score != 40 {
		t.Fatalf("expected base score 40 when every factor is unknown, got %d", result.Score)
	}
	for name, v := range result.Factors {
		if v != 50 {
			t.Fatalf("expected factor %s to stay at midpoint, got %d", name, v)
		}
	}
	if !strings.Contains(result.Reasoning, "Limited compatibility") {
		t.Fatalf("expected limited-compatibility band, got: %s", result.Reasoning)
	}
}

func TestDeterministicScorerDeterminism(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	first := scorer.Score(context.Background(), fullEvent(), fullSponsor())
	for i := 0; i < 10; i++ {
		again := scorer.Score(context.Background(), fullEvent(), fullSponsor())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("identical inputs produced different results:\n%+v\n%+v", first, again)
		}
	}
}

func TestDeterministicScorerMismatchedProfilesBelowThreshold(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	result := scorer.Score(context.Background(), mismatchedEvent(), mismatchedSponsor())

	if result.Score > 60 {
		t.Fatalf("expected a non-qualifying score for opposite-budget unrelated profiles, got %d", result.Score)
	}
	if !strings.Contains(result.Reasoning, "Limited compatibility") {
		t.Fatalf("expected limited-compatibility band, got: %s", result.Reasoning)
	}
}

func TestDeterministicScorerBounds(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	cases := []struct {
		name    string
		event   EventProfile
		sponsor SponsorProfile
	}{
		{"full", fullEvent(), fullSponsor()},
		{"empty", EventProfile{}, SponsorProfile{}},
		{"mismatched", mismatchedEvent(), mismatchedSponsor()},
	}

	for _, tc := range cases {
		result := scorer.Score(context.Background(), tc.event, tc.sponsor)
		if result.Score < 0 || result.Score > 100 {
			t.Fatalf("%s: score %d out of range", tc.name, result.Score)
		}
		for name, v := range result.Factors {
			if v < 0 || v > 100 {
				t.Fatalf("%s: factor %s value %d out of range", tc.name, name, v)
			}
		}
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := DefaultScoringConfig().Weights.Sum()
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("expected weights to sum to 1.0, got %v", sum)
	}
}

func TestThemeCompatibility(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	cases := []struct {
		category string
		industry string
		want     int
	}{
		{"Technology", "Technology", 95},
		{"technology", "Education", 85},
		{"Business", "Consulting", 95},
		{"Music Festival", "Music", 75}, // keyword overlap fallback
		{"Gaming", "Agriculture", 45},
	}

	for _, tc := range cases {
		got := scorer.themeCompatibility(tc.category, tc.industry)
		if got != tc.want {
			t.Errorf("themeCompatibility(%q, %q) = %d, want %d", tc.category, tc.industry, got, tc.want)
		}
	}
}

func TestAudienceAlignment(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	cases := []struct {
		size         int
		demographics []string
		want         int
	}{
		{50, nil, 50},
		{100, nil, 55},
		{200, nil, 60},
		{500, nil, 65},
		{1000, nil, 70},
		{1000, []string{"College Students"}, 80},
		{5000, []string{"College Students", "Young Professionals", "Tech Enthusiasts"}, 95}, // capped
		{50, []string{"Retirees"}, 50},
	}

	for _, tc := range cases {
		got := scorer.audienceAlignment(tc.size, tc.demographics)
		if got != tc.want {
			t.Errorf("audienceAlignment(%d, %v) = %d, want %d", tc.size, tc.demographics, got, tc.want)
		}
	}
}

func TestBudgetCompatibility(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	cases := []struct {
		event   string
		sponsor string
		want    int
	}{
		{"$500 - $1,000", "$500 - $1,000", 95},
		{"$500 - $1,000", "$1,000 - $2,500", 80},
		{"$500 - $1,000", "$2,500 - $5,000", 65},
		{"$500 - $1,000", "$5,000 - $10,000", 40},
		{"$500 - $1,000", "$25,000+", 40},
		{"$25,000+", "$10,000 - $25,000", 80},
		{"unknown", "$500 - $1,000", 50},
		{"$500 - $1,000", "", 50},
	}

	for _, tc := range cases {
		got := scorer.budgetCompatibility(tc.event, tc.sponsor)
		if got != tc.want {
			t.Errorf("budgetCompatibility(%q, %q) = %d, want %d", tc.event, tc.sponsor, got, tc.want)
		}
	}
}

func TestGeographicProximity(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	cases := []struct {
		event   string
		sponsor string
		want    int
	}{
		{"Austin, TX", "austin, tx", 95},
		{"Austin, TX", "Dallas, TX", 80},
		{"New York", "Los Angeles", 45},
	}

	for _, tc := range cases {
		got := scorer.geographicProximity(tc.event, tc.sponsor)
		if got != tc.want {
			t.Errorf("geographicProximity(%q, %q) = %d, want %d", tc.event, tc.sponsor, got, tc.want)
		}
	}
}

func TestMarketingAlignment(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	goals := "brand awareness, networking, innovation, education, leadership"
	description := "visibility for sponsors, community engagement, future technology, learning, professional careers"

	// Every group matches: 50 + 20 + 15 + 15 + 10 + 10 = 120, capped at 95.
	if got := scorer.marketingAlignment(goals, description); got != 95 {
		t.Fatalf("expected cap at 95, got %d", got)
	}

	if got := scorer.marketingAlignment("sell widgets", "academic symposium"); got != 50 {
		t.Fatalf("expected 50 when no group matches, got %d", got)
	}

	// A keyword present only on one side must not count.
	if got := scorer.marketingAlignment("brand awareness", "academic symposium"); got != 50 {
		t.Fatalf("expected 50 for one-sided keyword, got %d", got)
	}
}

func TestIndustryPreference(t *testing.T) {
	scorer := NewDeterministicScorer(DefaultScoringConfig())

	if got := scorer.industryPreference("Technology", "Academic"); got != 85 {
		t.Fatalf("expected 85 for preferred category, got %d", got)
	}
	if got := scorer.industryPreference("Technology", "Cultural"); got != 45 {
		t.Fatalf("expected 45 for non-preferred category, got %d", got)
	}
	if got := scorer.industryPreference("Agriculture", "Technology"); got != 45 {
		t.Fatalf("expected 45 for unlisted industry, got %d", got)
	}
}
