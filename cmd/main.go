package main

import (
	"github.com/Arison99/School-Management-System/internal/handler"
	"github.com/Arison99/School-Management-System/internal/middleware"
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository"
	"github.com/Arison99/School-Management-System/internal/service"
	"github.com/Arison99/School-Management-System/pkg/config"
	"github.com/Arison99/School-Management-System/pkg/database"
	"github.com/Arison99/School-Management-System/pkg/jwtutil"
	"github.com/Arison99/School-Management-System/pkg/logger"
	"github.com/Arison99/School-Management-System/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting school management service...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(db,
		&model.User{},
		&model.School{},
		&model.Class{},
		&model.Student{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrated")

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, jwtUtil)
	schoolSvc := service.NewSchoolService(schoolRepo)
	classSvc := service.NewClassService(classRepo, studentRepo)
	studentSvc := service.NewStudentService(studentRepo, classRepo)

	// Handlers
	env := cfg.Server.Env
	authHandler := handler.NewAuthHandler(authSvc, env)
	schoolHandler := handler.NewSchoolHandler(schoolSvc, env)
	classHandler := handler.NewClassHandler(classSvc, env)
	studentHandler := handler.NewStudentHandler(studentSvc, env)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	api := e.Group("/api")
	api.GET("/health", handler.HealthCheck)
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)

	// Everything below requires a valid bearer token
	authed := api.Group("", middleware.Auth(jwtUtil, userRepo))

	// School profile routes
	schools := authed.Group("/schools")
	schools.POST("", schoolHandler.Create)
	schools.GET("", schoolHandler.List)
	schools.GET("/my-school", schoolHandler.MySchool)
	schools.GET("/stats", schoolHandler.Stats)
	schools.GET("/:id", schoolHandler.ByID)
	schools.PUT("", schoolHandler.Update)
	schools.DELETE("", schoolHandler.Delete)

	// Class routes - require a school profile
	classes := authed.Group("/classes", middleware.RequireSchool(schoolRepo))
	classes.GET("", classHandler.List)
	classes.POST("", classHandler.Create)
	classes.GET("/stats", classHandler.Stats)
	classes.GET("/:classId", classHandler.Get)
	classes.PUT("/:classId", classHandler.Update)
	classes.DELETE("/:classId", classHandler.Delete)

	// Student routes nested under classes
	classes.POST("/:classId/students", studentHandler.Add)
	classes.PUT("/:classId/students/:studentId", studentHandler.Update)
	classes.DELETE("/:classId/students/:studentId", studentHandler.Delete)

	// School-wide student listing and search
	students := authed.Group("/students", middleware.RequireSchool(schoolRepo))
	students.GET("", studentHandler.All)
	students.GET("/search", studentHandler.Search)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
