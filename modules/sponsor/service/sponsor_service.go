package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sponsorsync-api/core/errors"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/queue"
	eventEntity "sponsorsync-api/modules/event/entity"
	"sponsorsync-api/modules/sponsor/dto"
	"sponsorsync-api/modules/sponsor/entity"
	"sponsorsync-api/modules/sponsor/repository"

	"github.com/google/uuid"
)

// SponsorService handles sponsor business logic
type SponsorService struct {
	repo  repository.SponsorRepositoryInterface
	queue *queue.Queue
}

// NewSponsorService creates a new service instance
func NewSponsorService(repo repository.SponsorRepositoryInterface, q *queue.Queue) *SponsorService {
	return &SponsorService{repo: repo, queue: q}
}

// SponsorServiceInterface defines the service contract
type SponsorServiceInterface interface {
	CreateSponsor(ctx context.Context, userID uuid.UUID, req *dto.CreateSponsorRequest) (*dto.SponsorResponse, *errors.AppError)
	GetMySponsor(ctx context.Context, userID uuid.UUID) (*dto.SponsorResponse, *errors.AppError)
	GetSponsor(ctx context.Context, id uuid.UUID) (*dto.SponsorResponse, *errors.AppError)
	ListSponsors(ctx context.Context) ([]dto.SponsorResponse, *errors.AppError)
	UpdateMySponsor(ctx context.Context, userID uuid.UUID, req *dto.UpdateSponsorRequest) (*dto.SponsorResponse, *errors.AppError)
}

func (s *SponsorService) CreateSponsor(ctx context.Context, userID uuid.UUID, req *dto.CreateSponsorRequest) (*dto.SponsorResponse, *errors.AppError) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Company name is required", nil)
	}
	if req.BudgetRange != nil && !eventEntity.IsValidBudgetRange(*req.BudgetRange) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Unknown budget range: %s", *req.BudgetRange), nil)
	}

	demographics, appErr := marshalDemographics(req.TargetDemographics)
	if appErr != nil {
		return nil, appErr
	}

	sponsor := &entity.Sponsor{
		UserID:             userID,
		CompanyName:        req.CompanyName,
		Industry:           req.Industry,
		Location:           req.Location,
		BudgetRange:        req.BudgetRange,
		MarketingGoals:     req.MarketingGoals,
		TargetDemographics: demographics,
	}

	created, err := s.repo.CreateSponsor(ctx, sponsor)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create sponsor profile", err)
	}
	if created == nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Sponsor profile already exists for this user", nil)
	}

	s.enqueueMatchmaking(userID)

	return dto.ToSponsorResponse(created), nil
}

func (s *SponsorService) GetMySponsor(ctx context.Context, userID uuid.UUID) (*dto.SponsorResponse, *errors.AppError) {
	sponsor, err := s.repo.GetSponsorByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get sponsor profile", err)
	}
	if sponsor == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Sponsor profile not found", nil)
	}
	return dto.ToSponsorResponse(sponsor), nil
}

func (s *SponsorService) GetSponsor(ctx context.Context, id uuid.UUID) (*dto.SponsorResponse, *errors.AppError) {
	sponsor, err := s.repo.GetSponsorByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get sponsor", err)
	}
	if sponsor == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Sponsor not found", nil)
	}
	return dto.ToSponsorResponse(sponsor), nil
}

func (s *SponsorService) ListSponsors(ctx context.Context) ([]dto.SponsorResponse, *errors.AppError) {
	sponsors, err := s.repo.GetAllSponsors(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list sponsors", err)
	}
	return dto.ToSponsorResponses(sponsors), nil
}

func (s *SponsorService) UpdateMySponsor(ctx context.Context, userID uuid.UUID, req *dto.UpdateSponsorRequest) (*dto.SponsorResponse, *errors.AppError) {
	sponsor, err := s.repo.GetSponsorByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get sponsor profile", err)
	}
	if sponsor == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Sponsor profile not found", nil)
	}

	if req.CompanyName != nil {
		if strings.TrimSpace(*req.CompanyName) == "" {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Company name is required", nil)
		}
		sponsor.CompanyName = *req.CompanyName
	}
	if req.BudgetRange != nil {
		if !eventEntity.IsValidBudgetRange(*req.BudgetRange) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Unknown budget range: %s", *req.BudgetRange), nil)
		}
		sponsor.BudgetRange = req.BudgetRange
	}
	if req.Industry != nil {
		sponsor.Industry = req.Industry
	}
	if req.Location != nil {
		sponsor.Location = req.Location
	}
	if req.MarketingGoals != nil {
		sponsor.MarketingGoals = req.MarketingGoals
	}
	if req.TargetDemographics != nil {
		demographics, appErr := marshalDemographics(req.TargetDemographics)
		if appErr != nil {
			return nil, appErr
		}
		sponsor.TargetDemographics = demographics
	}

	if err := s.repo.UpdateSponsor(ctx, sponsor); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update sponsor profile", err)
	}

	s.enqueueMatchmaking(userID)

	return dto.ToSponsorResponse(sponsor), nil
}

// enqueueMatchmaking refreshes recommendations in the background. Failures
// are logged but never surfaced to the caller.
func (s *SponsorService) enqueueMatchmaking(userID uuid.UUID) {
	if s.queue == nil {
		return
	}
	task, err := queue.NewMatchmakingGenerateTask(userID)
	if err != nil {
		logger.Error("SponsorService:enqueueMatchmaking", err)
		return
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Error("SponsorService:enqueueMatchmaking", err)
	}
}

func marshalDemographics(demographics []string) (*string, *errors.AppError) {
	if demographics == nil {
		return nil, nil
	}
	raw, err := json.Marshal(demographics)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid target demographics", err)
	}
	s := string(raw)
	return &s, nil
}
