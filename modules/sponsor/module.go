package sponsor

import (
	"sponsorsync-api/core/database"
	"sponsorsync-api/core/middleware"
	"sponsorsync-api/core/queue"
	"sponsorsync-api/modules/sponsor/controller"
	"sponsorsync-api/modules/sponsor/repository"
	"sponsorsync-api/modules/sponsor/router"
	"sponsorsync-api/modules/sponsor/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the sponsor module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, q *queue.Queue) {
	repo := repository.NewSponsorRepository(db)
	svc := service.NewSponsorService(repo, q)
	ctrl := controller.NewSponsorController(svc)
	rtr := router.NewSponsorRouter(ctrl)

	rtr.Setup(e, mw)
}
