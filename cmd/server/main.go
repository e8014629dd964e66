package main

import (
	"log"
	"time"

	"event-management-api/config"
	"event-management-api/internal/database"
	"event-management-api/internal/handler"
	"event-management-api/internal/middleware"
	"event-management-api/internal/ratelimit"
	"event-management-api/internal/repository"
	"event-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	eventRepo := repository.NewEventRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	membershipRepo := repository.NewMembershipRepository(pool)
	logRepo := repository.NewRegistrationLogRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	tagRepo := repository.NewTagRepository(pool)

	eventService := service.NewEventService(pool, eventRepo)
	registrationService := service.NewRegistrationService(pool, eventRepo, userRepo, membershipRepo, logRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	tagService := service.NewTagService(tagRepo)
	userService := service.NewUserService(userRepo)

	limit := middleware.RateLimit(ratelimit.NewRedisStore(rdb), 30, time.Minute)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewParticipantHandler(eventService, registrationService).RegisterRoutes(router, limit)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(router)
	handler.NewTagHandler(tagService).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
