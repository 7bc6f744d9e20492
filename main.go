package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"swiftcart-backend/internal/api"
	"swiftcart-backend/internal/cache"
	"swiftcart-backend/internal/config"
	"swiftcart-backend/internal/database"
	"swiftcart-backend/internal/logger"
	"swiftcart-backend/internal/repository"
)

func main() {
	cfg := config.Load()

	client, db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("could not connect to MongoDB", err)
		os.Exit(1)
	}
	defer database.Disconnect(client)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("could not create upload directory", err)
		os.Exit(1)
	}

	productRepo := repository.NewMongoProductRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	cacheService := cache.NewService()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api.RegisterRoutes(
		r,
		api.NewProductHandler(productRepo, cacheService, cfg.UploadDir, cfg.ProductPerPage),
		api.NewUserHandler(userRepo),
		api.NewOrderHandler(orderRepo, productRepo, cacheService),
		api.NewStatsHandler(productRepo, userRepo, orderRepo, cacheService),
		api.AdminOnly(userRepo),
		cfg.UploadDir,
	)

	logger.Info("Server is running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", err)
		os.Exit(1)
	}
}
