package main

import (
	"fmt"
	"log"

	"nursery_manager/internal/config"
	"nursery_manager/internal/database"
	"nursery_manager/internal/migrations"
	"nursery_manager/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.Nursery{},
		&models.Container{},
		&models.StockBatch{},
		&models.Order{},
		&models.OrderLine{},
		&models.Transfer{},
		&models.TransferStop{},
		&models.MotherPlant{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Recreate schema and seed reference data
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Println("Database initialized successfully!")
}
