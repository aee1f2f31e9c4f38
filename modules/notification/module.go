package notification

import (
	"sponsorsync-api/core/database"
	"sponsorsync-api/core/middleware"
	"sponsorsync-api/modules/notification/controller"
	"sponsorsync-api/modules/notification/repository"
	"sponsorsync-api/modules/notification/router"
	"sponsorsync-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and returns the service so
// other modules can emit notifications.
func Init(e *echo.Group, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc
}
