package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/learnhub/config"
	"github.com/lshigami/learnhub/database"
	_ "github.com/lshigami/learnhub/docs"
	"github.com/lshigami/learnhub/internal/cache"
	adminctrl "github.com/lshigami/learnhub/internal/controller/admin"
	employeectrl "github.com/lshigami/learnhub/internal/controller/employee"
	"github.com/lshigami/learnhub/internal/event"
	"github.com/lshigami/learnhub/internal/logger"
	"github.com/lshigami/learnhub/internal/metrics"
	"github.com/lshigami/learnhub/internal/middleware"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/repository"
	"github.com/lshigami/learnhub/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title LearnHub Quiz API
// @version 1.0
// @description Course quizzes for employees: one scored submission per quiz, with admin authoring and readiness validation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			cache.NewRedisClient,
			service.NewGeminiClient,
			NewEventPublisher,
			NewMetricsRecorder,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
			repository.NewSubmissionRepository,
			repository.NewEnrollmentRepository,
			repository.NewCourseRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			fx.Annotate(cache.NewSubmissionLock, fx.As(new(service.SubmissionLocker))),
			service.NewScoreService,
			service.NewStudyFeedbackGenerator,
			service.NewQuizSubmissionService,
			service.NewQuizValidationService,
			service.NewEmployeeQuizService,
			service.NewAdminQuizService,
			service.NewQuestionService,
			service.NewCourseService,
			service.NewFeedbackService,
		),

		fx.Provide(
			employeectrl.NewEmployeeQuizController,
			adminctrl.NewAdminQuizController,
			adminctrl.NewAdminCourseController,
		),

		fx.Invoke(func(cfg *config.Config) { logger.SetLevel(cfg.LogLevel) }),
		fx.Invoke(database.AutoMigrate),
		fx.Invoke(RegisterClosers),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

// NewEventPublisher provides the RabbitMQ publisher behind the event.Publisher interface.
func NewEventPublisher(cfg *config.Config) (event.Publisher, error) {
	p, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewMetricsRecorder registers the submission metrics on the default Prometheus registry.
func NewMetricsRecorder() metrics.Recorder {
	return metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
}

// NewGinEngine builds the router with request ids, zerolog request logging, recovery, CORS, swagger and metrics.
func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys[middleware.ContextRequestID].(string)
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("request_id", requestID).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	employeeCtrl *employeectrl.EmployeeQuizController,
	adminQuizCtrl *adminctrl.AdminQuizController,
	adminCourseCtrl *adminctrl.AdminCourseController,
) {
	router.GET("/health", func(ctx *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx.Request.Context())
		}
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1", middleware.RequireAuth(cfg.JWTSecret))
	employeeCtrl.RegisterRoutes(api.Group("/employee"))

	adminGroup := api.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	adminQuizCtrl.RegisterRoutes(adminGroup)
	adminCourseCtrl.RegisterRoutes(adminGroup)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("LearnHub quiz API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// RegisterClosers releases the external clients after the HTTP server has stopped.
func RegisterClosers(lc fx.Lifecycle, db *gorm.DB, rdb *redis.Client, publisher event.Publisher, gemini *genai.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			var errs []error
			if err := publisher.Close(); err != nil {
				errs = append(errs, err)
			}
			if rdb != nil {
				if err := rdb.Close(); err != nil {
					errs = append(errs, err)
				}
			}
			if gemini != nil {
				if err := gemini.Close(); err != nil {
					errs = append(errs, err)
				}
			}
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	})
}
