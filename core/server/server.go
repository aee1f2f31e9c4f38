package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sponsorsync-api/core/cache"
	"sponsorsync-api/core/config"
	"sponsorsync-api/core/constants"
	"sponsorsync-api/core/database"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/middleware"
	"sponsorsync-api/core/queue"
	"sponsorsync-api/modules/event"
	"sponsorsync-api/modules/matchmaking"
	"sponsorsync-api/modules/notification"
	"sponsorsync-api/modules/sponsor"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server and blocks until shutdown
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	redisCache, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer redisCache.Close()

	q := queue.NewQueue(cfg.Redis)
	defer q.Shutdown()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware(redisCache)

	// Module wiring. Notifications come first so matchmaking can emit them.
	v1Private := e.Group("/api/v1").Group("/private")
	notificationSvc := notification.Init(v1Private, db, mw)

	event.Init(e, db, mw, q)
	sponsor.Init(e, db, mw, q)
	matchmaking.Init(e, db, mw, redisCache, q, notificationSvc)

	if err := q.Start(); err != nil {
		return fmt.Errorf("start queue worker: %w", err)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", err)
		}
	}()

	logger.Info("Server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	// Give in-flight background tasks a moment before asynq shuts down.
	time.Sleep(100 * time.Millisecond)

	logger.Info("Server stopped")
	return nil
}
