package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neolink/internal/clients"
	"neolink/internal/config"
	"neolink/internal/handlers"
	"neolink/internal/middleware"
	"neolink/internal/repository"
	"neolink/internal/service"
	"neolink/internal/worker"
	"neolink/pkg/database"
	"neolink/pkg/logger"
	"neolink/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logg.Sync()

	logg.Info("neolink starting", "env", cfg.App.Env, "source", cfg.Dataset.ApproachSource)

	var (
		db           *gorm.DB
		neoRepo      repository.NEORepository
		approachRepo repository.ApproachRepository
	)
	if cfg.DB.Enabled {
		db, err = database.Connect(database.Config{
			Driver:   cfg.DB.Driver,
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			DBName:   cfg.DB.DBName,
			SSLMode:  cfg.DB.SSLMode,
			Path:     cfg.DB.Path,
		}, logg)
		if err != nil {
			logg.Fatal("failed to connect to database", "error", err)
		}
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db, logg); err != nil {
			logg.Fatal("failed to migrate database", "error", err)
		}

		neoRepo = repository.NewNEORepository(db)
		approachRepo = repository.NewApproachRepository(db)
	}

	var (
		redisClient *goredis.Client
		cacheRepo   repository.CacheRepository
	)
	if cfg.Redis.Enabled {
		redisClient, err = redis.Connect(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logg)
		if err != nil {
			logg.Fatal("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient)
	} else {
		cacheRepo = repository.NewMemoryCacheRepository()
	}

	var source service.Source
	switch cfg.Dataset.ApproachSource {
	case "api":
		cadClient := clients.NewCADClient(clients.CADConfig{
			URL:     cfg.CAD.URL,
			Timeout: cfg.CAD.Timeout,
		})
		source = service.NewAPISource(cfg.Dataset.NEOPath, cadClient, clients.CADQuery{
			DateMin: cfg.CAD.DateMin,
			DateMax: cfg.CAD.DateMax,
			DistMax: cfg.CAD.DistMax,
		})
	case "file":
		source = service.NewFileSource(cfg.Dataset.NEOPath, cfg.Dataset.ApproachPath)
	default:
		logg.Fatal("unknown approach source", "source", cfg.Dataset.ApproachSource)
	}

	datasetService := service.NewDatasetService(source, neoRepo, approachRepo, cacheRepo, logg, service.DatasetConfig{
		QueryTTL:     cfg.Redis.QueryTTL,
		DefaultLimit: cfg.Query.DefaultLimit,
		MaxLimit:     cfg.Query.MaxLimit,
	})
	exportService := service.NewExportService(datasetService, logg, service.ExportConfig{
		OutputDir: cfg.Export.OutputDir,
		MaxRows:   cfg.Export.MaxRows,
	})

	scheduler := worker.NewScheduler(logg)
	if cfg.Workers.DatasetEnabled {
		// the worker performs the initial load itself
		scheduler.AddWorker(worker.NewDatasetWorker(datasetService, cfg.Workers.DatasetInterval, logg))
		logg.Info("dataset worker enabled", "interval", cfg.Workers.DatasetInterval)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if _, err := datasetService.Reload(ctx); err != nil {
			logg.Error("initial dataset load failed", "error", err)
		}
		cancel()
	}

	go scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		logg.Info("running in debug mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logg))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if !cfg.App.Debug {
		limit := rate.Limit(cfg.RateLimit.RequestsPerSecond)
		if cfg.RateLimit.PerIP {
			r.Use(middleware.IPRateLimitMiddleware(middleware.NewIPRateLimiter(limit, cfg.RateLimit.Burst), logg))
		} else {
			r.Use(middleware.RateLimitMiddleware(rate.NewLimiter(limit, cfg.RateLimit.Burst), logg))
		}
		logg.Info("rate limiting enabled",
			"rps", cfg.RateLimit.RequestsPerSecond,
			"burst", cfg.RateLimit.Burst,
			"per_ip", cfg.RateLimit.PerIP,
		)
	}

	handlers.RegisterRoutes(r.Group("/api/v1"),
		handlers.NewNEOHandler(datasetService),
		handlers.NewApproachHandler(datasetService, exportService),
		handlers.NewSystemHandler(datasetService, db, redisClient, gin.H{
			"dataset_enabled":  cfg.Workers.DatasetEnabled,
			"dataset_interval": cfg.Workers.DatasetInterval.String(),
		}),
		cfg.App.Debug,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logg.Info("server starting", "addr", server.Addr, "api", "/api/v1")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed to start", "error", err)
		}
	}()

	<-quit
	logg.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("server forced to shutdown", "error", err)
		return
	}

	logg.Info("server exited properly")
}
