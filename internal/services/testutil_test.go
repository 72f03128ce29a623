package services

import (
	"testing"

	"nursery_manager/internal/database"
	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// One connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestNursery(t *testing.T, db *gorm.DB, integration models.IntegrationMode) *models.Nursery {
	t.Helper()
	nursery := &models.Nursery{
		Name:        "Test nursery",
		NurseryType: string(models.NurseryOwn),
		Integration: string(integration),
	}
	if err := db.Create(nursery).Error; err != nil {
		t.Fatalf("create nursery: %v", err)
	}
	return nursery
}

func createTestContainer(t *testing.T, db *gorm.DB) *models.Container {
	t.Helper()
	container := &models.Container{Name: "Pot 1L", ShortName: "P1"}
	if err := db.Create(container).Error; err != nil {
		t.Fatalf("create container: %v", err)
	}
	return container
}

func createTestBatch(t *testing.T, db *gorm.DB, nurseryID, containerID uint, qty int) *models.StockBatch {
	t.Helper()
	batch := &models.StockBatch{
		NurseryID:         nurseryID,
		ContainerID:       containerID,
		SpeciesID:         1,
		SpeciesName:       "Quercus robur",
		Quantity:          qty,
		AvailableQuantity: qty,
		PriceEuros:        12.5,
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("create batch: %v", err)
	}
	return batch
}

func reloadBatch(t *testing.T, db *gorm.DB, id uint) *models.StockBatch {
	t.Helper()
	var batch models.StockBatch
	if err := db.First(&batch, id).Error; err != nil {
		t.Fatalf("reload batch %d: %v", id, err)
	}
	return &batch
}

func assertCounters(t *testing.T, batch *models.StockBatch, quantity, available, reserved int) {
	t.Helper()
	if batch.Quantity != quantity || batch.AvailableQuantity != available || batch.ReservedQuantity != reserved {
		t.Fatalf("batch %d counters = quantity %d available %d reserved %d, want %d/%d/%d",
			batch.ID, batch.Quantity, batch.AvailableQuantity, batch.ReservedQuantity,
			quantity, available, reserved)
	}
	if batch.AvailableQuantity < 0 || batch.ReservedQuantity < 0 ||
		batch.AvailableQuantity+batch.ReservedQuantity > batch.Quantity {
		t.Fatalf("batch %d violates stock invariant: quantity %d available %d reserved %d",
			batch.ID, batch.Quantity, batch.AvailableQuantity, batch.ReservedQuantity)
	}
}

func newTestOrderService(t *testing.T, db *gorm.DB) (OrderService, StockService) {
	t.Helper()
	return newTestOrderServiceWithCache(t, db, nil)
}

func newTestOrderServiceWithCache(t *testing.T, db *gorm.DB, cache CatalogCache) (OrderService, StockService) {
	t.Helper()
	stock := NewStockService(db, cache)
	orders := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewOrderLineRepository(db),
		repository.NewNurseryRepository(db),
		repository.NewStockBatchRepository(db),
		stock,
	)
	return orders, stock
}

// recordingCache counts catalog invalidations so tests can check when the
// ledger touches the cache.
type recordingCache struct {
	invalidations int
}

func (c *recordingCache) InvalidateCatalog() error {
	c.invalidations++
	return nil
}
