package main

import (
	"net/http"
	"os"

	"cityfix-be/ai"
	"cityfix-be/config"
	"cityfix-be/controllers"
	"cityfix-be/middlewares"
	"cityfix-be/routes"
	"cityfix-be/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Logger = logger

	cfg := config.LoadConfig()

	db := config.ConnectDB()
	if db == nil {
		log.Fatal().Msg("Failed to connect to MongoDB")
	}
	config.ConnectRedis()

	log.Info().Msg("MongoDB connection established successfully!")

	var store storage.ImageStore
	switch cfg.StorageDriver {
	case "mongo":
		store = storage.NewMongoStore(config.GetCollection("images"))
	default:
		diskStore, err := storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare uploads directory")
		}
		store = diskStore
	}
	controllers.SetImageStore(store)
	controllers.SetClassifier(ai.NewGateway(cfg.AIServiceURL, logger))

	r := gin.Default()
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	// Disk-backed uploads are served statically, document-backed ones
	// through /api/uploads/:id.
	r.Static("/uploads", cfg.UploadDir)

	routes.AuthRoutes(r)
	routes.ReportRoutes(r, cfg.ReportDailyLimit)
	routes.UploadRoutes(r)
	routes.AIRoutes(r, cfg.ReportDailyLimit)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "CityFix API is running")
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
