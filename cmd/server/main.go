package main

import (
	"log"
	"time"

	"nursery_manager/internal/config"
	"nursery_manager/internal/database"
	"nursery_manager/internal/handlers"
	"nursery_manager/internal/redis"
	"nursery_manager/internal/repository"
	"nursery_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	nurseryRepo := repository.NewNurseryRepository(db)
	containerRepo := repository.NewContainerRepository(db)
	batchRepo := repository.NewStockBatchRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lineRepo := repository.NewOrderLineRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	plantRepo := repository.NewMotherPlantRepository(db)

	// Initialize services
	stockService := services.NewStockService(db, redisClient)
	orderService := services.NewOrderService(db, orderRepo, lineRepo, nurseryRepo, batchRepo, stockService)
	transferService := services.NewTransferService(transferRepo, orderRepo, nurseryRepo)
	plantService := services.NewMotherPlantService(plantRepo)
	catalogService := services.NewCatalogService(batchRepo, redisClient, time.Duration(cfg.CatalogCacheTTL)*time.Second)
	nurseryService := services.NewNurseryService(nurseryRepo, containerRepo, batchRepo)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	stockHandler := handlers.NewStockHandler(stockService)
	transferHandler := handlers.NewTransferHandler(transferService)
	plantHandler := handlers.NewMotherPlantHandler(plantService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	nurseryHandler := handlers.NewNurseryHandler(nurseryService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders", orderHandler.GetOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PATCH("/orders/:id/process", orderHandler.ProcessOrder)
		api.PATCH("/orders/:id/ready", orderHandler.MarkReady)
		api.PATCH("/orders/:id/pickup", orderHandler.MarkPickedUp)
		api.PATCH("/orders/:id/cancel", orderHandler.CancelOrder)

		api.POST("/stock-batches", stockHandler.CreateStockBatch)
		api.GET("/stock-batches/:id", stockHandler.GetStockBatch)
		api.PATCH("/stock-batches/:id/add-stock", stockHandler.AddStock)
		api.PATCH("/stock-batches/:id/shrink", stockHandler.Shrink)
		api.PATCH("/stock-batches/:id/availability", stockHandler.SetManualAvailability)
		api.GET("/stock-batches/:id/order-lines", orderHandler.GetLinesForBatch)

		api.POST("/transfers", transferHandler.CreateTransfer)
		api.GET("/transfers/:id", transferHandler.GetTransfer)
		api.PATCH("/transfers/:id/start", transferHandler.StartTransfer)
		api.PATCH("/transfers/:id/complete", transferHandler.CompleteTransfer)
		api.PATCH("/transfers/:id/cancel", transferHandler.CancelTransfer)

		api.POST("/mother-plants", plantHandler.SubmitMotherPlant)
		api.GET("/mother-plants", plantHandler.GetMotherPlants)
		api.PATCH("/mother-plants/:id/validate", plantHandler.ValidateMotherPlant)
		api.PATCH("/mother-plants/:id/reject", plantHandler.RejectMotherPlant)

		api.GET("/catalog", catalogHandler.GetCatalog)

		api.POST("/nurseries", nurseryHandler.CreateNursery)
		api.GET("/nurseries", nurseryHandler.GetNurseries)
		api.GET("/nurseries/:id", nurseryHandler.GetNursery)
		api.PATCH("/nurseries/:id", nurseryHandler.UpdateNursery)
		api.DELETE("/nurseries/:id", nurseryHandler.DeleteNursery)

		api.POST("/containers", nurseryHandler.CreateContainer)
		api.GET("/containers", nurseryHandler.GetContainers)
		api.DELETE("/containers/:id", nurseryHandler.DeleteContainer)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
