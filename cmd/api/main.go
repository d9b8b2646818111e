package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campus-routine/routine-api/api/swagger"
	"github.com/campus-routine/routine-api/internal/dateutil"
	"github.com/campus-routine/routine-api/internal/handler"
	"github.com/campus-routine/routine-api/internal/middleware"
	"github.com/campus-routine/routine-api/internal/repository"
	"github.com/campus-routine/routine-api/internal/service"
	"github.com/campus-routine/routine-api/pkg/cache"
	"github.com/campus-routine/routine-api/pkg/config"
	"github.com/campus-routine/routine-api/pkg/database"
	"github.com/campus-routine/routine-api/pkg/logger"
	corsmiddleware "github.com/campus-routine/routine-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-routine/routine-api/pkg/middleware/requestid"
	"github.com/campus-routine/routine-api/pkg/storage"
)

// @title Campus Routine API
// @version 1.0.0
// @description Class schedule publishing and room booking portal
// @BasePath /api
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis connection failed", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	uploads, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("uploads storage init failed", "error", err)
	}

	calendar := dateutil.NewCalendar(cfg.Portal.Timezone)
	validate := validator.New()

	metricsSvc := service.NewMetricsService()

	bookingRepo := repository.NewBookingRepository(db, metricsSvc)
	publicationRepo := repository.NewPublicationRepository(redisClient, logr)

	authSvc := service.NewAuthService(cfg.Auth, logr)
	publishSvc := service.NewPublishService(publicationRepo, uploads, logr)
	bookingSvc := service.NewBookingService(bookingRepo, calendar, validate, logr)
	exportSvc := service.NewExportService(publishSvc, bookingSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc, cfg.Auth)
	publishHandler := handler.NewPublishHandler(publishSvc, metricsSvc, cfg.Uploads)
	bookingHandler := handler.NewBookingHandler(bookingSvc, authSvc, cfg.Auth.CookieName)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/published/:name", publishHandler.Published)
		api.GET("/bookings", bookingHandler.List)
		api.POST("/bookings", bookingHandler.Create)
		api.GET("/export/routine", exportHandler.Routine)

		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)

		admin := api.Group("")
		admin.Use(middleware.AdminRequired(authSvc, cfg.Auth.CookieName))
		{
			admin.GET("/admin/me", authHandler.Me)
			admin.GET("/files", publishHandler.Files)
			admin.POST("/files", publishHandler.Upload)
			admin.DELETE("/files", publishHandler.DeleteFile)
			admin.POST("/publish", publishHandler.Publish)
			admin.GET("/publish", publishHandler.Status)
			admin.DELETE("/publish", publishHandler.Unpublish)
			admin.PATCH("/bookings/:id", bookingHandler.UpdateStatus)
			admin.GET("/export/bookings", exportHandler.Bookings)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
