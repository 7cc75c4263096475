package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/snaptrust/trust-growth-backend/internal/ai"
	"github.com/snaptrust/trust-growth-backend/internal/config"
	"github.com/snaptrust/trust-growth-backend/internal/database"
	"github.com/snaptrust/trust-growth-backend/internal/handler"
	"github.com/snaptrust/trust-growth-backend/internal/middleware"
	"github.com/snaptrust/trust-growth-backend/internal/repository"
	"github.com/snaptrust/trust-growth-backend/internal/service"
	"github.com/snaptrust/trust-growth-backend/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	loader := store.NewLoader(cfg.PaymentsCSV, cfg.MerchantsCSV)

	var db *sql.DB
	if cfg.CacheEnabled {
		var err error
		db, err = database.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open cache database")
		}
		defer db.Close()

		if cfg.AutoMigrate {
			if err := database.RunMigrations(cfg.MigrationsURL, cfg.SQLitePath); err != nil {
				log.Fatal().Err(err).Msg("failed to run migrations")
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.Populate(ctx, db, loader); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("failed to populate cache")
		}
		cancel()
	} else {
		log.Info().Msg("cache disabled, dashboard endpoints unavailable")
	}

	var adapter ai.Adapter
	if cfg.OpenAIKey != "" {
		adapter = ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.AITimeout)
		log.Info().Str("model", cfg.OpenAIModel).Msg("AI enrichment enabled")
	} else {
		adapter = ai.Disabled{}
		log.Info().Msg("AI enrichment disabled, using deterministic fallbacks")
	}
	narrator := ai.NewNarrator(adapter)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	setupAPIRoutes(router, loader, db, narrator, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

func setupAPIRoutes(router *gin.Engine, loader *store.Loader, db *sql.DB, narrator *ai.Narrator, cfg *config.Config) {
	scoringCfg := cfg.ScoringConfig()

	var dashboardRepo *repository.DashboardRepository
	if db != nil {
		dashboardRepo = repository.NewDashboardRepository(db)
	}

	customerService := service.NewCustomerService(loader, scoringCfg, narrator)
	merchantService := service.NewMerchantService(loader, scoringCfg, narrator)
	leaderboardService := service.NewLeaderboardService(customerService, merchantService)
	dashboardService := service.NewDashboardService(dashboardRepo, scoringCfg)
	aiService := service.NewAIQueryService(customerService, merchantService, narrator, dashboardRepo)

	healthHandler := handler.NewHealthHandler(db)
	customerHandler := handler.NewCustomerHandler(customerService)
	merchantHandler := handler.NewMerchantHandler(merchantService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	aiHandler := handler.NewAIHandler(aiService)

	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	customers := router.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.GET("/:id/summary/explain", customerHandler.Explain)
		customers.GET("/:id/history", customerHandler.History)
		customers.GET("/:id/recommendations", customerHandler.Recommendations)
	}

	merchants := router.Group("/merchants")
	{
		merchants.GET("", merchantHandler.List)
		merchants.GET("/:id", merchantHandler.Get)
		merchants.GET("/:id/summary/explain", merchantHandler.Explain)
		merchants.GET("/:id/history", merchantHandler.History)
		merchants.GET("/:id/benchmark", merchantHandler.Benchmark)
		merchants.GET("/:id/recommendations", merchantHandler.Recommendations)
	}

	leaderboard := router.Group("/leaderboard")
	{
		leaderboard.GET("/customers", leaderboardHandler.Customers)
		leaderboard.GET("/merchants", leaderboardHandler.Merchants)
	}

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/merchants", dashboardHandler.Merchants)
		dashboard.GET("/consumers", dashboardHandler.Consumers)
	}

	aiGroup := router.Group("/ai")
	{
		aiGroup.POST("/query", aiHandler.Query)
		aiGroup.POST("/chat", aiHandler.Chat)
	}
}
