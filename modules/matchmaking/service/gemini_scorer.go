package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sponsorsync-api/core/constants"
	"sponsorsync-api/core/logger"
)

// contentGenerator is the slice of the Gemini client the scorer needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiScorer is the model-backed scoring path. Every failure mode of
// the external call (network, timeout, malformed output, missing fields)
// falls back to the deterministic scorer; the caller never sees a
// partial or degraded result.
type GeminiScorer struct {
	generator contentGenerator
	fallback  MatchScorer
	timeout   time.Duration
}

// NewGeminiScorer wraps generator with a mandatory fallback scorer
func NewGeminiScorer(generator contentGenerator, fallback MatchScorer, timeout time.Duration) *GeminiScorer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GeminiScorer{
		generator: generator,
		fallback:  fallback,
		timeout:   timeout,
	}
}

// Score asks the model for a weighted assessment and falls back to the
// deterministic scorer on any failure
func (s *GeminiScorer) Score(ctx context.Context, event EventProfile, sponsor SponsorProfile) MatchResult {
	result, err := s.scoreViaModel(ctx, event, sponsor)
	if err != nil {
		logger.Warn("GeminiScorer:Score:Fallback",
			"event_id", event.ID.String(),
			"sponsor_id", sponsor.ID.String(),
			"error", err,
		)
		return s.fallback.Score(ctx, event, sponsor)
	}
	return *result
}

func (s *GeminiScorer) scoreViaModel(ctx context.Context, event EventProfile, sponsor SponsorProfile) (*MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateContent(ctx, buildMatchPrompt(event, sponsor))
	if err != nil {
		return nil, err
	}

	return parseMatchResponse(raw)
}

func buildMatchPrompt(event EventProfile, sponsor SponsorProfile) string {
	metricsJSON, _ := json.Marshal(event.EngagementMetrics)
	demographicsJSON, _ := json.Marshal(sponsor.TargetDemographics)

	return fmt.Sprintf(`You are an advanced AI matchmaking expert specializing in student event sponsorships.
Analyze the compatibility between this event and sponsor using sophisticated matching criteria.

Event Details:
- Title: %s
- Category: %s
- Description: %s
- Location: %s
- Budget Range: %s
- Audience Size: %s
- Date: %s
- Engagement Metrics: %s

Sponsor Details:
- Company: %s
- Industry: %s
- Location: %s
- Budget Range: %s
- Marketing Goals: %s
- Target Demographics: %s

MATCHING CRITERIA (weights):
1. Event theme/category compatibility (25%%)
2. Audience demographics alignment (20%%)
3. Budget range compatibility (20%%)
4. Geographic proximity (15%%)
5. Industry preferences (10%%)
6. Marketing goals alignment (10%%)

Provide a JSON response with:
1. A precise match score (0-100) based on weighted criteria
2. Detailed reasoning explaining why this is/isn't a good match
3. Specific matching factors with individual scores
4. Actionable insights for both parties

Response format:
{
  "score": 87,
  "reasoning": "Excellent match due to strong alignment in target demographics and budget compatibility.",
  "factors": {
    "theme_compatibility": 92,
    "audience_alignment": 88,
    "budget_compatibility": 85,
    "geographic_proximity": 75,
    "industry_preferences": 90,
    "marketing_alignment": 87
  },
  "insights": "This partnership could provide significant brand exposure to tech-savvy students."
}`,
		orNotSpecified(event.Title),
		orNotSpecified(event.Category),
		orNotSpecified(event.Description),
		orNotSpecified(event.Location),
		orNotSpecified(event.BudgetRange),
		audienceSizeLabel(event.AudienceSize),
		orNotSpecified(event.EventDate),
		string(metricsJSON),
		orNotSpecified(sponsor.CompanyName),
		orNotSpecified(sponsor.Industry),
		orNotSpecified(sponsor.Location),
		orNotSpecified(sponsor.BudgetRange),
		orNotSpecified(sponsor.MarketingGoals),
		string(demographicsJSON),
	)
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Not specified"
	}
	return v
}

func audienceSizeLabel(size int) string {
	if size <= 0 {
		return "Not specified"
	}
	return fmt.Sprintf("%d", size)
}

// parseMatchResponse extracts the first JSON object from the model reply
// and validates the required fields
func parseMatchResponse(raw string) (*MatchResult, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	score, ok := coerceNumber(data["score"])
	if !ok {
		return nil, fmt.Errorf("model response missing numeric score")
	}

	reasoning, _ := data["reasoning"].(string)
	reasoning = strings.TrimSpace(reasoning)
	if reasoning == "" {
		return nil, fmt.Errorf("model response missing reasoning")
	}

	rawFactors, ok := data["factors"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("model response missing factors object")
	}

	factors := make(map[string]int, len(rawFactors))
	for name, v := range rawFactors {
		if n, ok := coerceNumber(v); ok {
			factors[name] = clampScore(int(n + 0.5))
		}
	}

	insights, _ := data["insights"].(string)

	return &MatchResult{
		Score:     clampScore(int(score + 0.5)),
		Reasoning: truncateRunes(reasoning, constants.MaxReasoningLength),
		Factors:   factors,
		Insights:  strings.TrimSpace(insights),
	}, nil
}

// extractJSON returns the substring from the first '{' to the last '}',
// which also strips markdown code fences around the object
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}

func coerceNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
