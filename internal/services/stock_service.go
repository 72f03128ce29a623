package services

import (
	"errors"
	"fmt"
	"log"

	"nursery_manager/internal/models"

	"gorm.io/gorm"
)

// CatalogCache is the slice of the redis client the stock ledger needs.
type CatalogCache interface {
	InvalidateCatalog() error
}

// StockService is the stock ledger: the only code allowed to touch a batch's
// available/reserved counters. Every mutation is a single guarded UPDATE
// (compare-and-set on the counter in the WHERE clause), so concurrent orders
// racing on the same batch serialize at the row and the
// available + reserved <= quantity invariant never transiently breaks.
type StockService interface {
	// WithTx returns a ledger bound to the given transaction so callers can
	// compose stock operations with their own writes atomically.
	WithTx(tx *gorm.DB) StockService

	CreateBatch(batch *models.StockBatch) error
	GetBatch(id uint) (*models.StockBatch, error)

	// Reserve moves qty from available to reserved. Fails with
	// ErrInsufficientStock if the batch has less available; never partially
	// reserves.
	Reserve(batchID uint, qty int) error
	// Release moves qty back from reserved to available (order cancellation).
	Release(batchID uint, qty int) error
	// Consume drops qty from reserved with no restock: the plants left the
	// nursery. The historical lot size stays untouched.
	Consume(batchID uint, qty int) error
	// AddStock grows quantity and available together (arrivals, corrections).
	AddStock(batchID uint, delta int) error
	// Shrink is the write-off path: quantity and available drop together,
	// guarded like Reserve so a loss can never eat into reserved stock.
	Shrink(batchID uint, qty int) error

	SetManualAvailability(batchID uint, available bool) error

	// InvalidateCatalog drops the cached catalog projection. Transaction
	// owners call it once after commit; a tx-bound ledger never writes the
	// cache, since dropping keys before commit lets a concurrent catalog
	// read repopulate them from pre-commit counters.
	InvalidateCatalog()
}

type stockService struct {
	db    *gorm.DB
	cache CatalogCache
}

func NewStockService(db *gorm.DB, cache CatalogCache) StockService {
	return &stockService{db: db, cache: cache}
}

func (s *stockService) WithTx(tx *gorm.DB) StockService {
	// No cache: invalidation belongs to whoever commits the transaction.
	return &stockService{db: tx, cache: nil}
}

func (s *stockService) CreateBatch(batch *models.StockBatch) error {
	if batch.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	if batch.SpeciesName == "" {
		return fmt.Errorf("%w: species_name is required", ErrValidation)
	}

	// A new lot is fully sellable until orders commit against it.
	batch.AvailableQuantity = batch.Quantity
	batch.ReservedQuantity = 0

	if err := s.db.Create(batch).Error; err != nil {
		return err
	}
	s.InvalidateCatalog()
	return nil
}

func (s *stockService) GetBatch(id uint) (*models.StockBatch, error) {
	var batch models.StockBatch
	if err := s.db.First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: stock batch %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &batch, nil
}

func (s *stockService) Reserve(batchID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: reserve quantity must be > 0", ErrValidation)
	}

	res := s.db.Model(&models.StockBatch{}).
		Where("id = ? AND available_quantity >= ?", batchID, qty).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity - ?", qty),
			"reserved_quantity":  gorm.Expr("reserved_quantity + ?", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		batch, err := s.GetBatch(batchID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: batch %d has %d available, requested %d",
			ErrInsufficientStock, batchID, batch.AvailableQuantity, qty)
	}

	s.InvalidateCatalog()
	return nil
}

func (s *stockService) Release(batchID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: release quantity must be > 0", ErrValidation)
	}

	res := s.db.Model(&models.StockBatch{}).
		Where("id = ? AND reserved_quantity >= ?", batchID, qty).
		Updates(map[string]interface{}{
			"available_quantity": gorm.Expr("available_quantity + ?", qty),
			"reserved_quantity":  gorm.Expr("reserved_quantity - ?", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		batch, err := s.GetBatch(batchID)
		if err != nil {
			return err
		}
		log.Printf("stock ledger: release of %d on batch %d exceeds reserved %d",
			qty, batchID, batch.ReservedQuantity)
		return fmt.Errorf("%w: batch %d has %d reserved, release of %d requested",
			ErrInvariantViolation, batchID, batch.ReservedQuantity, qty)
	}

	s.InvalidateCatalog()
	return nil
}

func (s *stockService) Consume(batchID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: consume quantity must be > 0", ErrValidation)
	}

	// Asymmetric on purpose: reserved drops, available does not come back,
	// quantity keeps the historical lot size.
	res := s.db.Model(&models.StockBatch{}).
		Where("id = ? AND reserved_quantity >= ?", batchID, qty).
		Update("reserved_quantity", gorm.Expr("reserved_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		batch, err := s.GetBatch(batchID)
		if err != nil {
			return err
		}
		log.Printf("stock ledger: consume of %d on batch %d exceeds reserved %d",
			qty, batchID, batch.ReservedQuantity)
		return fmt.Errorf("%w: batch %d has %d reserved, consume of %d requested",
			ErrInvariantViolation, batchID, batch.ReservedQuantity, qty)
	}

	s.InvalidateCatalog()
	return nil
}

func (s *stockService) AddStock(batchID uint, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: stock delta must be > 0", ErrValidation)
	}

	res := s.db.Model(&models.StockBatch{}).
		Where("id = ?", batchID).
		Updates(map[string]interface{}{
			"quantity":           gorm.Expr("quantity + ?", delta),
			"available_quantity": gorm.Expr("available_quantity + ?", delta),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: stock batch %d", ErrNotFound, batchID)
	}

	s.InvalidateCatalog()
	return nil
}

func (s *stockService) Shrink(batchID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: shrink quantity must be > 0", ErrValidation)
	}

	res := s.db.Model(&models.StockBatch{}).
		Where("id = ? AND available_quantity >= ?", batchID, qty).
		Updates(map[string]interface{}{
			"quantity":           gorm.Expr("quantity - ?", qty),
			"available_quantity": gorm.Expr("available_quantity - ?", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		batch, err := s.GetBatch(batchID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: batch %d has %d available, write-off of %d requested",
			ErrInsufficientStock, batchID, batch.AvailableQuantity, qty)
	}

	s.InvalidateCatalog()
	return nil
}

func (s *stockService) SetManualAvailability(batchID uint, available bool) error {
	res := s.db.Model(&models.StockBatch{}).
		Where("id = ?", batchID).
		Update("manual_available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: stock batch %d", ErrNotFound, batchID)
	}

	s.InvalidateCatalog()
	return nil
}

func (s *stockService) InvalidateCatalog() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(); err != nil {
		log.Printf("Warning: failed to invalidate catalog cache: %v", err)
	}
}
