package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "campus-console/api/swagger"
	"campus-console/internal/client"
	"campus-console/internal/handler"
	"campus-console/internal/middleware"
	"campus-console/internal/models"
	"campus-console/internal/service"
	"campus-console/pkg/config"
	"campus-console/pkg/logger"
	corsmiddleware "campus-console/pkg/middleware/cors"
	reqidmiddleware "campus-console/pkg/middleware/requestid"
)

// @title Campus Console API
// @version 0.1.0
// @description Admin console backend for the school-management API
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	base := client.New(cfg.Upstream, logr, client.WithObserver(metrics))
	courseClient := client.NewCourseClient(base)
	teacherClient := client.NewTeacherClient(base)
	studentClient := client.NewStudentClient(base)
	topicClient := client.NewTopicClient(base)

	courses := service.NewCourseListService(courseClient, logr)
	refData := service.NewRefDataService(teacherClient, studentClient, topicClient, logr)
	sessions := service.NewSessionService(courses, courseClient, refData, cfg.Sessions.TTL, logr)
	exports := service.NewExportService(courses, cfg.Exports.Enabled, logr)

	students := service.NewEntityListService("alumno", studentClient,
		func(s models.Student) int64 { return s.ID }, cfg.Sessions.TTL, logr)
	teachers := service.NewEntityListService("docente", teacherClient,
		func(t models.Teacher) int64 { return t.ID }, cfg.Sessions.TTL, logr)
	topics := service.NewEntityListService("tema", topicClient,
		func(t models.Topic) int64 { return t.ID }, cfg.Sessions.TTL, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions.StartSweeper(ctx, cfg.Sessions.SweepInterval)
	students.StartSweeper(ctx, cfg.Sessions.SweepInterval)
	teachers.StartSweeper(ctx, cfg.Sessions.SweepInterval)
	topics.StartSweeper(ctx, cfg.Sessions.SweepInterval)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.NewCourseHandler(courses, sessions, exports).Register(api)
	handler.NewEntityHandler(students).Register(api, "alumnos")
	handler.NewEntityHandler(teachers).Register(api, "docentes")
	handler.NewEntityHandler(topics).Register(api, "temas")

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("console starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("console failed", "error", err)
	}
}
