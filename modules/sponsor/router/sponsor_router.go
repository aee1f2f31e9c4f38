package router

import (
	"sponsorsync-api/core/middleware"
	"sponsorsync-api/modules/sponsor/controller"

	"github.com/labstack/echo/v4"
)

// SponsorRouter handles sponsor routes
type SponsorRouter struct {
	SponsorController *controller.SponsorController
}

// NewSponsorRouter creates a new router
func NewSponsorRouter(sponsorController *controller.SponsorController) *SponsorRouter {
	return &SponsorRouter{
		SponsorController: sponsorController,
	}
}

// Setup registers sponsor routes
func (r *SponsorRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	sponsorRoutes := privateRoutes.Group("/sponsors", mw.AuthMiddleware())

	sponsorRoutes.POST("", r.SponsorController.CreateSponsor)
	sponsorRoutes.GET("", r.SponsorController.ListSponsors)
	sponsorRoutes.GET("/me", r.SponsorController.GetMySponsor)
	sponsorRoutes.PUT("/me", r.SponsorController.UpdateMySponsor)
	sponsorRoutes.GET("/:id", r.SponsorController.GetSponsor)
}
