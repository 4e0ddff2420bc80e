package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "dailydiet/internal/app"
	"dailydiet/internal/bootstrap"
	"dailydiet/internal/cache"
	"dailydiet/internal/platform/rabbitmq"
	"dailydiet/internal/repository"
	"dailydiet/internal/transport/http/handler"
	"dailydiet/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/actuator/health", healthHandler.Actuator)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	mealRepo := repository.NewMealRepository(app.MySQL)
	summaryCache := cache.NewSummaryCache(
		app.Redis,
		time.Duration(app.Config.Redis.SummaryTTLSeconds)*time.Second,
	)
	publisher := rabbitmq.NewMealEventPublisher(app.MQConn, app.Config.RabbitMQ.MealEventQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireHour)*time.Hour,
	)
	mealService := appsvc.NewMealService(mealRepo, publisher, summaryCache)

	authHandler := handler.NewAuthHandler(authService)
	mealHandler := handler.NewMealHandler(mealService)

	authGroup := router.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	mealGroup := router.Group("/meals")
	mealGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret, authService))
	mealGroup.POST("", mealHandler.Create)
	mealGroup.GET("", mealHandler.List)
	mealGroup.GET("/summary", mealHandler.Summary)
	mealGroup.GET("/:id", mealHandler.Get)
	mealGroup.PUT("/:id", mealHandler.Update)
	mealGroup.DELETE("/:id", mealHandler.Delete)

	return router
}
