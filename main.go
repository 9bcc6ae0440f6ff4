package main

import (
	"certvault/config"
	certificateControllers "certvault/controllers/certificate"
	"certvault/database"
	authRoutes "certvault/routers/authRoutes"
	certificateRoutes "certvault/routers/certificateRoutes"
	dashboardRoutes "certvault/routers/dashboardRoutes"
	"certvault/storage"
	"certvault/utils"
	"certvault/verification"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	database.ConnectRedis()

	store, err := storage.New()
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	extractor := verification.NewOCRExtractor(config.AppConfig.TesseractLang)
	pipeline := verification.NewPipeline(database.Database.Db, extractor, config.AppConfig.MatchThreshold)
	certificateControllers.Init(pipeline, store)

	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024, // uploads are capped at 10 MB plus form overhead
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve locally stored certificate files
	if config.AppConfig.StorageDriver == "local" {
		app.Static("/uploads", config.AppConfig.UploadDir)
	}

	authRoutes.SetupAuthRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)

	utils.StartRankScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
