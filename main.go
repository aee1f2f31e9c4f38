package main

import (
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/server"
)

// @title SponsorSync API
// @version 1.0
// @description API backend for SponsorSync - connecting student organizations with event sponsors
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@sponsorsync.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
