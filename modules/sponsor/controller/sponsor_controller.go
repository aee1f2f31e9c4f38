package controller

import (
	"sponsorsync-api/core/constants"
	"sponsorsync-api/core/controller"
	"sponsorsync-api/core/errors"
	"sponsorsync-api/core/utils"
	"sponsorsync-api/modules/sponsor/dto"
	"sponsorsync-api/modules/sponsor/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SponsorController handles sponsor HTTP requests
type SponsorController struct {
	controller.BaseController
	SponsorService service.SponsorServiceInterface
}

// NewSponsorController creates a new controller
func NewSponsorController(svc service.SponsorServiceInterface) *SponsorController {
	return &SponsorController{
		BaseController: controller.NewBaseController(),
		SponsorService: svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *SponsorController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// CreateSponsor handles POST /sponsors
// @Summary Create a sponsor profile
// @Description Create the sponsor profile for the authenticated user
// @Tags Sponsor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSponsorRequest true "Sponsor details"
// @Success 200 {object} dto.SponsorResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/sponsors [post]
func (c *SponsorController) CreateSponsor(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateSponsorRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SponsorService.CreateSponsor(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Sponsor profile created successfully")
}

// GetMySponsor handles GET /sponsors/me
// @Summary Get my sponsor profile
// @Tags Sponsor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SponsorResponse
// @Failure 404 {object} errors.AppError
// @Router /private/sponsors/me [get]
func (c *SponsorController) GetMySponsor(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.SponsorService.GetMySponsor(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetSponsor handles GET /sponsors/:id
// @Summary Get a sponsor
// @Tags Sponsor
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sponsor ID"
// @Success 200 {object} dto.SponsorResponse
// @Failure 404 {object} errors.AppError
// @Router /private/sponsors/{id} [get]
func (c *SponsorController) GetSponsor(ctx echo.Context) error {
	sponsorID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid sponsor ID")
	}

	result, appErr := c.SponsorService.GetSponsor(ctx.Request().Context(), sponsorID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListSponsors handles GET /sponsors
// @Summary List sponsors
// @Description List all sponsor profiles open to partnerships
// @Tags Sponsor
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.SponsorResponse
// @Failure 401 {object} errors.AppError
// @Router /private/sponsors [get]
func (c *SponsorController) ListSponsors(ctx echo.Context) error {
	result, appErr := c.SponsorService.ListSponsors(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateMySponsor handles PUT /sponsors/me
// @Summary Update my sponsor profile
// @Tags Sponsor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateSponsorRequest true "Fields to update"
// @Success 200 {object} dto.SponsorResponse
// @Failure 404 {object} errors.AppError
// @Router /private/sponsors/me [put]
func (c *SponsorController) UpdateMySponsor(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdateSponsorRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SponsorService.UpdateMySponsor(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Sponsor profile updated successfully")
}
