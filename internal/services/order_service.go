package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderLineInput is one requested batch/quantity pair at checkout.
type OrderLineInput struct {
	StockBatchID uint `json:"stock_batch_id"`
	Quantity     int  `json:"quantity"`
	PayInSemos   bool `json:"pay_in_semos"`
}

// CreateOrderInput carries everything checkout knows about a new order.
type CreateOrderInput struct {
	PickupNurseryID uint             `json:"pickup_nursery_id"`
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   string           `json:"customer_email"`
	CustomerPhone   string           `json:"customer_phone"`
	IsMember        bool             `json:"is_member"`
	PriceLevel      string           `json:"price_level"`
	Lines           []OrderLineInput `json:"lines"`
}

// OrderService drives the order state machine and is the only caller of the
// stock ledger's reserve/release/consume operations:
//
//	new        -> processing : reserve every line (all or nothing)
//	processing -> ready      : no stock effect
//	ready      -> picked_up  : consume every line
//	new/processing/ready -> cancelled : release lines still holding stock
type OrderService interface {
	CreateOrder(input CreateOrderInput) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	GetOrders(status string) ([]models.Order, error)
	// GetLinesForBatch lists every order line committed against a batch,
	// the admin view behind "who is holding this stock".
	GetLinesForBatch(batchID uint) ([]*models.OrderLine, error)
	ProcessOrder(id uint) (*models.Order, error)
	MarkReady(id uint) (*models.Order, error)
	MarkPickedUp(id uint) (*models.Order, error)
	CancelOrder(id uint) (*models.Order, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	lineRepo    repository.OrderLineRepository
	nurseryRepo repository.NurseryRepository
	batchRepo   repository.StockBatchRepository
	stock       StockService
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	nurseryRepo repository.NurseryRepository,
	batchRepo repository.StockBatchRepository,
	stock StockService,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		nurseryRepo: nurseryRepo,
		batchRepo:   batchRepo,
		stock:       stock,
	}
}

func (s *orderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.CustomerName == "" || input.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customer name and email are required", ErrValidation)
	}
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", ErrValidation)
	}

	nursery, err := s.nurseryRepo.GetByID(input.PickupNurseryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pickup nursery %d", ErrNotFound, input.PickupNurseryID)
		}
		return nil, err
	}

	priceLevel := input.PriceLevel
	if priceLevel == "" {
		priceLevel = string(models.PriceStandard)
	}
	if priceLevel != string(models.PriceStandard) && priceLevel != string(models.PriceMember) {
		return nil, fmt.Errorf("%w: unknown price level %q", ErrValidation, priceLevel)
	}

	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		PickupNurseryID: nursery.ID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		IsMember:        input.IsMember,
		PriceLevel:      priceLevel,
		Status:          string(models.OrderNew),
	}

	// Prices and display names are snapshotted here; later catalog price
	// drift never changes an existing order's invoice.
	for _, li := range input.Lines {
		if li.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line quantity must be > 0", ErrValidation)
		}
		batch, err := s.batchRepo.GetByID(li.StockBatchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: stock batch %d", ErrNotFound, li.StockBatchID)
			}
			return nil, err
		}

		line := models.OrderLine{
			StockBatchID:   batch.ID,
			SpeciesName:    batch.SpeciesName,
			NurseryName:    nursery.Name,
			Quantity:       li.Quantity,
			UnitPriceEuros: batch.PriceEuros,
			PayInSemos:     li.PayInSemos,
		}
		if container, err := s.containerName(batch.ContainerID); err == nil {
			line.ContainerName = container
		}

		if li.PayInSemos {
			if !batch.AcceptsSemos || batch.PriceSemos == nil {
				return nil, fmt.Errorf("%w: batch %d does not accept semos", ErrValidation, batch.ID)
			}
			semos := *batch.PriceSemos
			line.UnitPriceSemos = &semos
			order.SubtotalSemos += semos * float64(li.Quantity)
		} else {
			order.SubtotalEuros += batch.PriceEuros * float64(li.Quantity)
		}

		order.Lines = append(order.Lines, line)
	}

	order.TotalEuros = order.SubtotalEuros
	order.TotalSemos = order.SubtotalSemos

	// Order and lines land in one transaction via the association create.
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrders(status string) ([]models.Order, error) {
	if status != "" {
		return s.orderRepo.GetByStatus(status)
	}
	return s.orderRepo.GetAll()
}

func (s *orderService) GetLinesForBatch(batchID uint) ([]*models.OrderLine, error) {
	return s.lineRepo.GetByStockBatchID(batchID)
}

// transitionStatus flips the order's status with the previous status in the
// WHERE clause. Two concurrent transitions on the same order both racing past
// a read of the old status cannot both pass this guard; the loser sees zero
// rows affected and gets ErrInvalidTransition.
func transitionStatus(tx *gorm.DB, id uint, to models.OrderStatus, from ...models.OrderStatus) error {
	allowed := make([]string, len(from))
	for i, status := range from {
		allowed[i] = string(status)
	}

	res := tx.Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, allowed).
		Update("status", string(to))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current string
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Pluck("status", &current).Error; err != nil {
			return err
		}
		return fmt.Errorf("%w: cannot move order %d from %q to %q", ErrInvalidTransition, id, current, to)
	}
	return nil
}

// ProcessOrder reserves stock for every line inside one transaction. The
// status flip runs first as a guarded update, so of two concurrent process
// calls only one reserves; if any line then comes up short the transaction
// rolls back, the order stays "new" and the error names the failing batch.
func (s *orderService) ProcessOrder(id uint) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := transitionStatus(tx, order.ID, models.OrderProcessing, models.OrderNew); err != nil {
			return err
		}
		ledger := s.stock.WithTx(tx)
		for i := range order.Lines {
			line := &order.Lines[i]
			if err := ledger.Reserve(line.StockBatchID, line.Quantity); err != nil {
				return err
			}
			if err := tx.Model(line).Update("reserved", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stock.InvalidateCatalog()
	return s.GetOrder(id)
}

func (s *orderService) MarkReady(id uint) (*models.Order, error) {
	if _, err := s.GetOrder(id); err != nil {
		return nil, err
	}
	if err := transitionStatus(s.db, id, models.OrderReady, models.OrderProcessing); err != nil {
		return nil, err
	}
	return s.GetOrder(id)
}

// MarkPickedUp consumes every reserved line: the plants physically left with
// the customer, so available stock is permanently reduced.
func (s *orderService) MarkPickedUp(id uint) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := transitionStatus(tx, order.ID, models.OrderPickedUp, models.OrderReady); err != nil {
			return err
		}
		ledger := s.stock.WithTx(tx)
		for i := range order.Lines {
			line := &order.Lines[i]
			if !line.Reserved {
				return fmt.Errorf("%w: line %d of order %d holds no reservation", ErrInvariantViolation, line.ID, order.ID)
			}
			if err := ledger.Consume(line.StockBatchID, line.Quantity); err != nil {
				return err
			}
			if err := tx.Model(line).Update("reserved", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stock.InvalidateCatalog()
	return s.GetOrder(id)
}

// CancelOrder releases every line still holding a reservation. Lines that
// never reserved (order still "new") are skipped; a line flagged reserved
// whose batch cannot release is a caller bug and surfaces as
// ErrInvariantViolation rather than being ignored.
func (s *orderService) CancelOrder(id uint) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := transitionStatus(tx, order.ID, models.OrderCancelled,
			models.OrderNew, models.OrderProcessing, models.OrderReady); err != nil {
			return err
		}
		ledger := s.stock.WithTx(tx)
		for i := range order.Lines {
			line := &order.Lines[i]
			if !line.Reserved {
				continue
			}
			if err := ledger.Release(line.StockBatchID, line.Quantity); err != nil {
				return err
			}
			if err := tx.Model(line).Update("reserved", false).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stock.InvalidateCatalog()
	return s.GetOrder(id)
}

func (s *orderService) containerName(containerID uint) (string, error) {
	var container models.Container
	if err := s.db.First(&container, containerID).Error; err != nil {
		return "", err
	}
	return container.Name, nil
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
