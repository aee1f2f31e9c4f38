package repository

import (
	"context"
	"database/sql"

	"sponsorsync-api/core/database"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/modules/matchmaking/entity"

	"github.com/google/uuid"
)

// RecommendationRepository handles recommendation database operations
type RecommendationRepository struct {
	DB database.Database
}

// NewRecommendationRepository creates a new repository instance
func NewRecommendationRepository(db database.Database) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// RecommendationRepositoryInterface defines the repository contract
type RecommendationRepositoryInterface interface {
	GetUserRole(ctx context.Context, userID uuid.UUID) (string, error)

	GetByPair(ctx context.Context, eventID, sponsorID uuid.UUID) (*entity.Recommendation, error)
	Insert(ctx context.Context, rec *entity.Recommendation) (*entity.Recommendation, error)
	UpdateStatusFields(ctx context.Context, eventID, sponsorID uuid.UUID, status *string, isStarred, isViewed *bool) (*entity.Recommendation, error)

	GetDetailByPair(ctx context.Context, eventID, sponsorID uuid.UUID) (*entity.RecommendationDetail, error)
	ListForOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.RecommendationDetail, error)
	ListForSponsorUser(ctx context.Context, userID uuid.UUID) ([]entity.RecommendationDetail, error)

	InsertHistory(ctx context.Context, h *entity.MatchHistory) error
}

const recommendationColumns = `
	id, reference, event_id, sponsor_id, match_score, reasoning, factors,
	insights, status, is_starred, is_viewed, created_at, updated_at
`

// GetUserRole resolves the caller's role from the user_roles table.
// Returns an empty string when no role is assigned.
func (r *RecommendationRepository) GetUserRole(ctx context.Context, userID uuid.UUID) (string, error) {
	query := `SELECT role FROM user_roles WHERE user_id = $1`

	var role string
	err := r.DB.GetContext(ctx, &role, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		logger.Error("RecommendationRepository:GetUserRole", err)
		return "", err
	}

	return role, nil
}

func (r *RecommendationRepository) GetByPair(ctx context.Context, eventID, sponsorID uuid.UUID) (*entity.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE event_id = $1 AND sponsor_id = $2`

	var rec entity.Recommendation
	err := r.DB.GetContext(ctx, &rec, query, eventID, sponsorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RecommendationRepository:GetByPair", err)
		return nil, err
	}

	return &rec, nil
}

// Insert persists a new recommendation. The (event_id, sponsor_id)
// unique constraint guards the check-then-insert race between concurrent
// generator runs: on conflict nothing is written and (nil, nil) is
// returned so the caller can treat the duplicate as a benign skip.
func (r *RecommendationRepository) Insert(ctx context.Context, rec *entity.Recommendation) (*entity.Recommendation, error) {
	query := `
		INSERT INTO recommendations (reference, event_id, sponsor_id, match_score, reasoning, factors, insights, status, is_starred, is_viewed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, false)
		ON CONFLICT (event_id, sponsor_id) DO NOTHING
		RETURNING ` + recommendationColumns + `
	`

	var created entity.Recommendation
	err := r.DB.GetContext(ctx, &created, query,
		rec.Reference, rec.EventID, rec.SponsorID, rec.MatchScore,
		rec.Reasoning, rec.Factors, rec.Insights, rec.Status)

	if err != nil {
		if err == sql.ErrNoRows {
			// Lost the race to a concurrent insert for the same pair
			return nil, nil
		}
		logger.Error("RecommendationRepository:Insert", err)
		return nil, err
	}

	return &created, nil
}

// UpdateStatusFields applies a partial update; nil fields keep their
// current value
func (r *RecommendationRepository) UpdateStatusFields(ctx context.Context, eventID, sponsorID uuid.UUID, status *string, isStarred, isViewed *bool) (*entity.Recommendation, error) {
	query := `
		UPDATE recommendations
		SET status = COALESCE($3, status),
		    is_starred = COALESCE($4, is_starred),
		    is_viewed = COALESCE($5, is_viewed),
		    updated_at = NOW()
		WHERE event_id = $1 AND sponsor_id = $2
		RETURNING ` + recommendationColumns + `
	`

	var updated entity.Recommendation
	err := r.DB.GetContext(ctx, &updated, query, eventID, sponsorID, status, isStarred, isViewed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RecommendationRepository:UpdateStatusFields", err)
		return nil, err
	}

	return &updated, nil
}

const recommendationDetailQuery = `
	SELECT r.id, r.reference, r.event_id, r.sponsor_id, r.match_score, r.reasoning,
	       r.factors, r.insights, r.status, r.is_starred, r.is_viewed,
	       r.created_at, r.updated_at,
	       e.title AS event_title, e.category AS event_category,
	       e.location AS event_location, e.event_date AS event_date,
	       s.company_name AS sponsor_company, s.industry AS sponsor_industry
	FROM recommendations r
	JOIN events e ON e.id = r.event_id
	JOIN sponsors s ON s.id = r.sponsor_id
`

func (r *RecommendationRepository) GetDetailByPair(ctx context.Context, eventID, sponsorID uuid.UUID) (*entity.RecommendationDetail, error) {
	query := recommendationDetailQuery + ` WHERE r.event_id = $1 AND r.sponsor_id = $2`

	var detail entity.RecommendationDetail
	err := r.DB.GetContext(ctx, &detail, query, eventID, sponsorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RecommendationRepository:GetDetailByPair", err)
		return nil, err
	}

	return &detail, nil
}

func (r *RecommendationRepository) ListForOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.RecommendationDetail, error) {
	query := recommendationDetailQuery + `
		WHERE e.organizer_id = $1
		ORDER BY r.match_score DESC, r.created_at DESC
	`

	var details []entity.RecommendationDetail
	err := r.DB.SelectContext(ctx, &details, query, organizerID)
	if err != nil {
		logger.Error("RecommendationRepository:ListForOrganizer", err)
		return nil, err
	}

	return details, nil
}

func (r *RecommendationRepository) ListForSponsorUser(ctx context.Context, userID uuid.UUID) ([]entity.RecommendationDetail, error) {
	query := recommendationDetailQuery + `
		WHERE s.user_id = $1
		ORDER BY r.match_score DESC, r.created_at DESC
	`

	var details []entity.RecommendationDetail
	err := r.DB.SelectContext(ctx, &details, query, userID)
	if err != nil {
		logger.Error("RecommendationRepository:ListForSponsorUser", err)
		return nil, err
	}

	return details, nil
}

func (r *RecommendationRepository) InsertHistory(ctx context.Context, h *entity.MatchHistory) error {
	query := `
		INSERT INTO match_history (recommendation_id, actor_id, action, metadata)
		VALUES ($1, $2, $3, $4)
	`

	err := r.DB.ExecContext(ctx, query, h.RecommendationID, h.ActorID, h.Action, h.Metadata)
	if err != nil {
		logger.Error("RecommendationRepository:InsertHistory", err)
		return err
	}

	return nil
}
