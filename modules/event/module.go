package event

import (
	"sponsorsync-api/core/database"
	"sponsorsync-api/core/middleware"
	"sponsorsync-api/core/queue"
	"sponsorsync-api/modules/event/controller"
	"sponsorsync-api/modules/event/repository"
	"sponsorsync-api/modules/event/router"
	"sponsorsync-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, q *queue.Queue) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, q)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
}
