package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/learningpath-api/api/swagger"
	"github.com/noah-isme/learningpath-api/internal/app"
	"github.com/noah-isme/learningpath-api/internal/handler"
	internalmiddleware "github.com/noah-isme/learningpath-api/internal/middleware"
	"github.com/noah-isme/learningpath-api/internal/models"
	"github.com/noah-isme/learningpath-api/pkg/config"
	"github.com/noah-isme/learningpath-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/learningpath-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/learningpath-api/pkg/middleware/requestid"
)

// @title Learning Path Progress API
// @version 1.0.0
// @description Per-user progress over LMS learning paths.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	application, err := app.New(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to wire application", "error", err)
	}
	defer application.Close() //nolint:errcheck

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(application.Metrics, "/health", "/ready", "/metrics"))

	metricsHandler := handler.NewMetricsHandler(application.Metrics, map[string]handler.Pinger{
		"database": handler.PingFunc(application.DB.PingContext),
		"cache":    application.Cache,
	}, logr)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	pathHandler := handler.NewLearningPathHandler(application.LearningPaths, application.Validator)
	rpcHandler := handler.NewRPCHandler(application.LearningPaths, application.Validator, logr)

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())
	api.Use(internalmiddleware.JWT(application.Auth))
	{
		api.GET("/learning-paths", pathHandler.List)
		api.GET("/learning-paths/exists", pathHandler.Exists)
		api.GET("/learning-paths/export", pathHandler.Export)
		api.GET("/learning-paths/:id/lines", pathHandler.Detail)
		api.POST("/ajax", rpcHandler.Dispatch)

		admin := api.Group("/admin")
		admin.Use(internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleManager))
		admin.GET("/learning-paths", pathHandler.Index)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
