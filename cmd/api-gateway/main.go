package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dorot-app/dorot-api/internal/handler"
	"github.com/dorot-app/dorot-api/internal/middleware"
	"github.com/dorot-app/dorot-api/internal/repository"
	"github.com/dorot-app/dorot-api/internal/service"
	"github.com/dorot-app/dorot-api/pkg/cache"
	"github.com/dorot-app/dorot-api/pkg/config"
	"github.com/dorot-app/dorot-api/pkg/database"
	"github.com/dorot-app/dorot-api/pkg/jobs"
	"github.com/dorot-app/dorot-api/pkg/logger"
	corsmiddleware "github.com/dorot-app/dorot-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dorot-app/dorot-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, continuing without response cache", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	personRepo := repository.NewPersonRepository(db)
	eventRepo := repository.NewCustomEventRepository(db)
	upcomingRepo := repository.NewUpcomingEventRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	personSvc := service.NewPersonService(personRepo, validate, logr)
	eventSvc := service.NewCustomEventService(eventRepo, personRepo, validate, logr)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, logr)
	upcomingSvc := service.NewUpcomingService(
		personRepo,
		eventRepo,
		upcomingRepo,
		cacheRepo,
		metricsSvc,
		cfg.Refresh.WindowDays,
		cfg.Upcoming.CacheTTL,
		logr,
	)
	feedSvc := service.NewFeedService(upcomingRepo, logr)

	refreshQueue := jobs.NewQueue("upcoming-refresh", func(ctx context.Context, job jobs.Job) error {
		today, ok := job.Payload.(time.Time)
		if !ok {
			today = time.Now().UTC()
		}
		_, err := upcomingSvc.Refresh(ctx, today)
		return err
	}, jobs.QueueConfig{
		Workers:    cfg.Refresh.WorkerConcurrency,
		MaxRetries: cfg.Refresh.WorkerRetries,
		Logger:     logr,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refreshQueue.Start(ctx)
	defer refreshQueue.Stop()

	if cfg.Refresh.CronEnabled {
		scheduler := service.NewRefreshScheduler(upcomingSvc, cfg.Refresh.CronSpec, logr)
		if err := scheduler.Start(); err != nil {
			logr.Sugar().Fatalw("failed to start refresh scheduler", "error", err)
		}
		defer scheduler.Stop()
	}

	personHandler := handler.NewPersonHandler(personSvc)
	eventHandler := handler.NewCustomEventHandler(eventSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc)
	upcomingHandler := handler.NewUpcomingHandler(upcomingSvc, refreshQueue)
	feedHandler := handler.NewFeedHandler(feedSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		people := api.Group("/people")
		{
			people.GET("", personHandler.List)
			people.POST("", personHandler.Create)
			people.GET("/:id", personHandler.Get)
			people.PUT("/:id", personHandler.Update)
			people.DELETE("/:id", personHandler.Delete)
			people.GET("/:id/events", eventHandler.ListByPerson)
			people.POST("/:id/events", eventHandler.Create)
		}

		events := api.Group("/events")
		{
			events.PUT("/:id", eventHandler.Update)
			events.DELETE("/:id", eventHandler.Delete)
		}

		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.GET("", subscriptionHandler.List)
			subscriptions.POST("", subscriptionHandler.Create)
			subscriptions.DELETE("/:id", subscriptionHandler.Delete)
		}

		upcoming := api.Group("/upcoming")
		{
			upcoming.GET("", upcomingHandler.List)
			upcoming.POST("/refresh", upcomingHandler.Refresh)
			if cfg.Feed.Enabled {
				upcoming.GET("/feed.ics", feedHandler.ICS)
				upcoming.GET("/export", feedHandler.Export)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
