package controller

import (
	"sponsorsync-api/core/cache"
	"sponsorsync-api/core/constants"
	"sponsorsync-api/core/controller"
	"sponsorsync-api/core/errors"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/utils"
	"sponsorsync-api/modules/matchmaking/dto"
	"sponsorsync-api/modules/matchmaking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MatchmakingController handles matchmaking HTTP requests
type MatchmakingController struct {
	controller.BaseController
	MatchmakingService service.MatchmakingServiceInterface
	cache              cache.Cache
	dailyQuota         int64
}

// NewMatchmakingController creates a new controller. dailyQuota <= 0
// falls back to the default limit.
func NewMatchmakingController(svc service.MatchmakingServiceInterface, c cache.Cache, dailyQuota int64) *MatchmakingController {
	if dailyQuota <= 0 {
		dailyQuota = constants.MatchmakingDailyQuota
	}
	return &MatchmakingController{
		BaseController:     controller.NewBaseController(),
		MatchmakingService: svc,
		cache:              c,
		dailyQuota:         dailyQuota,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *MatchmakingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// checkQuota bumps and enforces the caller's daily request counter. A
// cache failure lets the request through rather than blocking matchmaking
// on Redis availability.
func (c *MatchmakingController) checkQuota(ctx echo.Context, userID uuid.UUID) *echo.HTTPError {
	count, err := c.cache.IncrementDailyQuota(ctx.Request().Context(), userID.String())
	if err != nil {
		logger.Warn("MatchmakingController:checkQuota", "error", err)
		return nil
	}
	if count > c.dailyQuota {
		return c.TooManyRequests(errors.ErrRateLimited, "Rate limit exceeded. Maximum 100 requests per day.")
	}
	return nil
}

// Matchmake handles POST /matchmaking
// @Summary Run a matchmaking action
// @Description Dispatches generateRecommendations, getSingleMatch or updateMatchStatus
// @Tags Matchmaking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MatchRequest true "Action payload"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Failure 429 {object} errors.AppError
// @Router /private/matchmaking [post]
func (c *MatchmakingController) Matchmake(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if httpErr := c.checkQuota(ctx, userID); httpErr != nil {
		return httpErr
	}

	var req dto.MatchRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	switch req.Action {
	case dto.ActionGenerateRecommendations:
		result, appErr := c.MatchmakingService.GenerateRecommendations(ctx.Request().Context(), userID)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, result, result.Message)

	case dto.ActionGetSingleMatch:
		if req.EventID == nil || req.SponsorID == nil {
			return c.BadRequest(errors.ErrInvalidInput, "event_id and sponsor_id are required")
		}
		result, appErr := c.MatchmakingService.GetSingleMatch(ctx.Request().Context(), *req.EventID, *req.SponsorID)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, result, "Success")

	case dto.ActionUpdateMatchStatus:
		if req.EventID == nil || req.SponsorID == nil {
			return c.BadRequest(errors.ErrInvalidInput, "event_id and sponsor_id are required")
		}
		result, appErr := c.MatchmakingService.UpdateMatchStatus(ctx.Request().Context(), userID, *req.EventID, *req.SponsorID, req.Status, req.IsStarred, req.IsViewed)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, result, "Match updated successfully")

	default:
		return c.BadRequest(errors.ErrInvalidInput, "Unknown action: "+req.Action)
	}
}

// ListRecommendations handles GET /matchmaking/recommendations
// @Summary List my recommendations
// @Description List the caller's recommendations, resolved by role
// @Tags Matchmaking
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RecommendationResponse
// @Failure 403 {object} errors.AppError
// @Router /private/matchmaking/recommendations [get]
func (c *MatchmakingController) ListRecommendations(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.MatchmakingService.ListRecommendations(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
