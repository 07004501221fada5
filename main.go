package main

import (
	"log"
	"os"

	"calmanage/internal/handlers"
	"calmanage/internal/models"
	"calmanage/internal/repository"
	"calmanage/internal/service"
	"calmanage/internal/storage"
	"calmanage/internal/tasks"
	"calmanage/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Calendar Management API
// @Description				Users, events with attendees, and month/week/day calendar views
func main() {
	if os.Getenv("ENV_CHECK") == "" {
		log.Println("loading .env")
		if err := godotenv.Load(); err != nil {
			log.Fatal("failed to load .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.User{}, &models.CalendarEvent{}, &models.EventAttendee{}); err != nil {
		log.Fatal("migration failed: ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	repo := repository.NewGorm(storage.DB)
	svc := service.New(repo)
	calendarHandler := handlers.NewCalendarHandler(svc)
	eventHandler := handlers.NewEventHandler(svc)
	userHandler := handlers.NewUserHandler(svc)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	calendarGroup := r.Group("/api/calendar")
	{
		calendarGroup.GET("/month", calendarHandler.Month)
		calendarGroup.GET("/month/:year/:month", calendarHandler.Month)
		calendarGroup.GET("/week", calendarHandler.Week)
		calendarGroup.GET("/week/:year/:week", calendarHandler.Week)
		calendarGroup.GET("/day", calendarHandler.Day)
		calendarGroup.GET("/day/:year/:month/:day", calendarHandler.Day)
		calendarGroup.GET("/export.ics", calendarHandler.ExportFeed)
		calendarGroup.GET("/ws", ws.CalendarWebSocketHandler)
	}

	events := r.Group("/api/events")
	{
		events.POST("", eventHandler.Create)
		events.GET("/:id", eventHandler.Details)
		events.PUT("/:id", eventHandler.Update)
		events.DELETE("/:id", eventHandler.Delete)
		events.GET("/:id/ics", eventHandler.DownloadICS)
		events.PUT("/:id/attendees/:userId/status", eventHandler.SetAttendeeStatus)
	}

	users := r.Group("/api/users")
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:id", userHandler.Details)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("server failed to start: ", err.Error())
	}
}
