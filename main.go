package main

import (
	"log"

	"ldportal/config"
	"ldportal/database"
	authRoutes "ldportal/routers/authRoutes"
	badgeRoutes "ldportal/routers/badgeRoutes"
	enrollmentRoutes "ldportal/routers/enrollmentRoutes"
	trainingRoutes "ldportal/routers/trainingRoutes"
	userRoutes "ldportal/routers/userRoutes"
	"ldportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	trainingRoutes.SetupTrainingRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	badgeRoutes.SetupBadgeRoutes(app)
	userRoutes.SetupUserRoutes(app)

	if config.AppConfig.SchedulerEnabled {
		utils.InitializePortalSchedulers()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
