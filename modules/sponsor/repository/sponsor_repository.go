package repository

import (
	"context"
	"database/sql"

	"sponsorsync-api/core/database"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/modules/sponsor/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SponsorRepository handles sponsor database operations
type SponsorRepository struct {
	DB database.Database
}

// NewSponsorRepository creates a new repository instance
func NewSponsorRepository(db database.Database) *SponsorRepository {
	return &SponsorRepository{DB: db}
}

// SponsorRepositoryInterface defines the repository contract
type SponsorRepositoryInterface interface {
	CreateSponsor(ctx context.Context, sponsor *entity.Sponsor) (*entity.Sponsor, error)
	GetSponsorByID(ctx context.Context, id uuid.UUID) (*entity.Sponsor, error)
	GetSponsorByUserID(ctx context.Context, userID uuid.UUID) (*entity.Sponsor, error)
	GetAllSponsors(ctx context.Context) ([]entity.Sponsor, error)
	UpdateSponsor(ctx context.Context, sponsor *entity.Sponsor) error
}

const sponsorColumns = `
	id, user_id, company_name, industry, location, budget_range,
	marketing_goals, target_demographics, created_at, updated_at
`

func (r *SponsorRepository) CreateSponsor(ctx context.Context, sponsor *entity.Sponsor) (*entity.Sponsor, error) {
	query := `
		INSERT INTO sponsors (user_id, company_name, industry, location, budget_range, marketing_goals, target_demographics)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + sponsorColumns + `
	`

	var created entity.Sponsor
	err := r.DB.GetContext(ctx, &created, query,
		sponsor.UserID, sponsor.CompanyName, sponsor.Industry, sponsor.Location,
		sponsor.BudgetRange, sponsor.MarketingGoals, sponsor.TargetDemographics)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, nil
		}
		logger.Error("SponsorRepository:CreateSponsor", err)
		return nil, err
	}

	return &created, nil
}

func (r *SponsorRepository) GetSponsorByID(ctx context.Context, id uuid.UUID) (*entity.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors WHERE id = $1`

	var sponsor entity.Sponsor
	err := r.DB.GetContext(ctx, &sponsor, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SponsorRepository:GetSponsorByID", err)
		return nil, err
	}

	return &sponsor, nil
}

func (r *SponsorRepository) GetSponsorByUserID(ctx context.Context, userID uuid.UUID) (*entity.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors WHERE user_id = $1`

	var sponsor entity.Sponsor
	err := r.DB.GetContext(ctx, &sponsor, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SponsorRepository:GetSponsorByUserID", err)
		return nil, err
	}

	return &sponsor, nil
}

// GetAllSponsors returns the full candidate set for student-side matching
func (r *SponsorRepository) GetAllSponsors(ctx context.Context) ([]entity.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors ORDER BY created_at DESC`

	var sponsors []entity.Sponsor
	err := r.DB.SelectContext(ctx, &sponsors, query)
	if err != nil {
		logger.Error("SponsorRepository:GetAllSponsors", err)
		return nil, err
	}

	return sponsors, nil
}

func (r *SponsorRepository) UpdateSponsor(ctx context.Context, sponsor *entity.Sponsor) error {
	query := `
		UPDATE sponsors
		SET company_name = $2, industry = $3, location = $4, budget_range = $5,
		    marketing_goals = $6, target_demographics = $7, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		sponsor.ID, sponsor.CompanyName, sponsor.Industry, sponsor.Location,
		sponsor.BudgetRange, sponsor.MarketingGoals, sponsor.TargetDemographics)

	if err != nil {
		logger.Error("SponsorRepository:UpdateSponsor", err)
		return err
	}

	return nil
}
