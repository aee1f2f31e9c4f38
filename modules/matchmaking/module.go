package matchmaking

import (
	"context"
	"time"

	"sponsorsync-api/core/cache"
	"sponsorsync-api/core/config"
	"sponsorsync-api/core/database"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/middleware"
	"sponsorsync-api/core/queue"
	eventRepository "sponsorsync-api/modules/event/repository"
	"sponsorsync-api/modules/matchmaking/controller"
	"sponsorsync-api/modules/matchmaking/gemini"
	"sponsorsync-api/modules/matchmaking/repository"
	"sponsorsync-api/modules/matchmaking/router"
	"sponsorsync-api/modules/matchmaking/service"
	"sponsorsync-api/modules/matchmaking/worker"
	sponsorRepository "sponsorsync-api/modules/sponsor/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the matchmaking module, registers routes and attaches
// the background generation handler.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, c cache.Cache, q *queue.Queue, notifier service.Notifier) {
	cfg := config.Get()

	repo := repository.NewRecommendationRepository(db)
	eventRepo := eventRepository.NewEventRepository(db)
	sponsorRepo := sponsorRepository.NewSponsorRepository(db)

	svc := service.NewMatchmakingService(repo, eventRepo, sponsorRepo, buildScorer(cfg), notifier)
	ctrl := controller.NewMatchmakingController(svc, c, int64(cfg.Matchmaking.DailyQuota))
	rtr := router.NewMatchmakingRouter(ctrl)

	rtr.Setup(e, mw)

	if q != nil {
		worker.NewWorker(svc).Register(q)
	}
}

// buildScorer returns the model-backed scorer when a Gemini key is
// configured, otherwise the deterministic one. The model-backed scorer
// falls back to the deterministic scorer internally on any failure.
func buildScorer(cfg *config.Config) service.MatchScorer {
	deterministic := service.NewDeterministicScorer(service.DefaultScoringConfig())

	if cfg.Gemini.APIKey == "" {
		logger.Info("Matchmaking: using deterministic scorer (no Gemini API key)")
		return deterministic
	}

	generator, err := gemini.NewGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logger.Error("Matchmaking:buildScorer", err)
		return deterministic
	}

	timeout := time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
	logger.Info("Matchmaking: using Gemini scorer", "model", generator.Model())
	return service.NewGeminiScorer(generator, deterministic, timeout)
}
