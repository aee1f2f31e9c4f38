package router

import (
	"sponsorsync-api/core/middleware"
	"sponsorsync-api/modules/matchmaking/controller"

	"github.com/labstack/echo/v4"
)

// MatchmakingRouter handles matchmaking routes
type MatchmakingRouter struct {
	MatchmakingController *controller.MatchmakingController
}

// NewMatchmakingRouter creates a new router
func NewMatchmakingRouter(matchmakingController *controller.MatchmakingController) *MatchmakingRouter {
	return &MatchmakingRouter{
		MatchmakingController: matchmakingController,
	}
}

// Setup registers matchmaking routes
func (r *MatchmakingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	matchRoutes := privateRoutes.Group("/matchmaking", mw.AuthMiddleware())

	matchRoutes.POST("", r.MatchmakingController.Matchmake)
	matchRoutes.GET("/recommendations", r.MatchmakingController.ListRecommendations)
}
