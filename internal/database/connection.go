package database

import (
	"fmt"
	"log"

	"nursery_manager/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	// Configure GORM
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate all models
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Nursery{},
		&models.Container{},
		&models.StockBatch{},
		&models.Order{},
		&models.OrderLine{},
		&models.Transfer{},
		&models.TransferStop{},
		&models.MotherPlant{},
	); err != nil {
		return err
	}

	// One planned or in-progress transfer per order. The service checks this
	// before creating, but only the index holds under concurrent creates.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_transfers_active_order
		ON transfers (order_id)
		WHERE status IN ('planned', 'in_progress') AND deleted_at IS NULL`).Error
}
