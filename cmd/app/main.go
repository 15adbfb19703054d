package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"challenge_league_api/internal/api"
	"challenge_league_api/internal/middleware"
	"challenge_league_api/internal/repository"
	"challenge_league_api/internal/service"
	"challenge_league_api/pkg/auth"
	"challenge_league_api/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	if err := repository.Migrate(cfg.Database); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	tokenAuth := auth.NewTokenAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authorization := middleware.NewAuthorization(tokenAuth, cfg.Auth.RequireToken, cfg.Auth.AdminKey)

	userService := service.NewUserService(repo, tokenAuth)
	contributionService := service.NewContributionService(repo, cfg.Streak.BonusPerDay)
	streakService := service.NewStreakService(repo)
	pointsService := service.NewPointsService(repo)
	challengeService := service.NewChallengeService(repo)
	teamService := service.NewTeamService(repo)
	leagueService := service.NewLeagueService(repo, cfg.League.WaitingRoomCapacity)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	api.SetErrorDetails(cfg.IsDevelopment())

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery(cfg.IsDevelopment()))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Monitor())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodPost,
		http.MethodOptions,
	}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.AdminKeyHeader}
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	router.NoMethod(api.MethodNotAllowed)
	router.NoRoute(api.NotFound)
	router.GET("/metrics", middleware.MetricsHandler())

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	done := make(chan struct{})
	defer close(done)
	go limiter.Cleanup(done)

	a := router.Group("/api/v1")
	a.Use(limiter.Middleware())
	api.NewUserRoutes(a, userService, authorization)
	api.NewContributionRoutes(a, contributionService, authorization)
	api.NewScoringRoutes(a, streakService, pointsService, authorization)
	api.NewChallengeRoutes(a, challengeService, authorization)
	api.NewTeamRoutes(a, teamService, authorization)
	api.NewLeagueRoutes(a, leagueService, authorization)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server",
		zap.String("addr", addr),
		zap.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
