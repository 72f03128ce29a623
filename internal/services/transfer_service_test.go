package services

import (
	"errors"
	"testing"

	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"

	"gorm.io/gorm"
)

func newTestTransferService(t *testing.T, db *gorm.DB) TransferService {
	t.Helper()
	return NewTransferService(
		repository.NewTransferRepository(db),
		repository.NewOrderRepository(db),
		repository.NewNurseryRepository(db),
	)
}

func createTestOrder(t *testing.T, db *gorm.DB, orders OrderService, nurseryID, batchID uint) *models.Order {
	t.Helper()
	order, err := orders.CreateOrder(CreateOrderInput{
		PickupNurseryID: nurseryID,
		CustomerName:    "Test customer",
		CustomerEmail:   "customer@example.org",
		Lines:           []OrderLineInput{{StockBatchID: batchID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestTransferLifecycle(t *testing.T) {
	db := setupTestDB(t)
	nursery := createTestNursery(t, db, models.IntegrationPlatform)
	container := createTestContainer(t, db)
	batch := createTestBatch(t, db, nursery.ID, container.ID, 10)
	orders, _ := newTestOrderService(t, db)
	order := createTestOrder(t, db, orders, nursery.ID, batch.ID)
	transfers := newTestTransferService(t, db)

	transfer, err := transfers.CreateTransfer(CreateTransferInput{
		OrderID:    order.ID,
		DriverName: "Ana",
		Stops: []TransferStopInput{
			{NurseryID: nursery.ID, Role: string(models.StopPickup)},
			{NurseryID: nursery.ID, Role: string(models.StopDropoff)},
		},
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	if transfer.Status != string(models.TransferPlanned) {
		t.Fatalf("status = %q", transfer.Status)
	}
	if len(transfer.Stops) != 2 || transfer.Stops[0].Position != 1 || transfer.Stops[1].Position != 2 {
		t.Fatalf("stops not ordered: %+v", transfer.Stops)
	}

	transfer, err = transfers.StartTransfer(transfer.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if transfer.Status != string(models.TransferInProgress) {
		t.Fatalf("status after start = %q", transfer.Status)
	}

	transfer, err = transfers.CompleteTransfer(transfer.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if transfer.Status != string(models.TransferCompleted) || transfer.CompletedAt == nil {
		t.Fatalf("completion not stamped: status %q completed_at %v", transfer.Status, transfer.CompletedAt)
	}

	// Completed is terminal.
	if _, err := transfers.CancelTransfer(transfer.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel completed: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := transfers.StartTransfer(transfer.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("restart completed: expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransferValidation(t *testing.T) {
	db := setupTestDB(t)
	nursery := createTestNursery(t, db, models.IntegrationPlatform)
	container := createTestContainer(t, db)
	batch := createTestBatch(t, db, nursery.ID, container.ID, 10)
	orders, _ := newTestOrderService(t, db)
	order := createTestOrder(t, db, orders, nursery.ID, batch.ID)
	transfers := newTestTransferService(t, db)

	if _, err := transfers.CreateTransfer(CreateTransferInput{
		OrderID: 999,
		Stops:   []TransferStopInput{{NurseryID: nursery.ID, Role: string(models.StopPickup)}},
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order: expected ErrNotFound, got %v", err)
	}

	if _, err := transfers.CreateTransfer(CreateTransferInput{
		OrderID: order.ID,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("no stops: expected ErrValidation, got %v", err)
	}

	if _, err := transfers.CreateTransfer(CreateTransferInput{
		OrderID: order.ID,
		Stops:   []TransferStopInput{{NurseryID: nursery.ID, Role: "detour"}},
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad role: expected ErrValidation, got %v", err)
	}

	if _, err := transfers.CreateTransfer(CreateTransferInput{
		OrderID: order.ID,
		Stops:   []TransferStopInput{{NurseryID: 999, Role: string(models.StopPickup)}},
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing nursery: expected ErrNotFound, got %v", err)
	}
}

func TestOneActiveTransferPerOrder(t *testing.T) {
	db := setupTestDB(t)
	nursery := createTestNursery(t, db, models.IntegrationPlatform)
	container := createTestContainer(t, db)
	batch := createTestBatch(t, db, nursery.ID, container.ID, 10)
	orders, _ := newTestOrderService(t, db)
	order := createTestOrder(t, db, orders, nursery.ID, batch.ID)
	transfers := newTestTransferService(t, db)

	stops := []TransferStopInput{{NurseryID: nursery.ID, Role: string(models.StopPickup)}}

	first, err := transfers.CreateTransfer(CreateTransferInput{OrderID: order.ID, Stops: stops})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	if _, err := transfers.CreateTransfer(CreateTransferInput{OrderID: order.ID, Stops: stops}); !errors.Is(err, ErrValidation) {
		t.Fatalf("second active transfer: expected ErrValidation, got %v", err)
	}

	if _, err := transfers.CancelTransfer(first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Once the first run is cancelled a replacement can be scheduled.
	if _, err := transfers.CreateTransfer(CreateTransferInput{OrderID: order.ID, Stops: stops}); err != nil {
		t.Fatalf("replacement transfer: %v", err)
	}
}

func TestTransferNeverTouchesStock(t *testing.T) {
	db := setupTestDB(t)
	nursery := createTestNursery(t, db, models.IntegrationPlatform)
	container := createTestContainer(t, db)
	batch := createTestBatch(t, db, nursery.ID, container.ID, 10)
	orders, _ := newTestOrderService(t, db)
	order := createTestOrder(t, db, orders, nursery.ID, batch.ID)
	if _, err := orders.ProcessOrder(order.ID); err != nil {
		t.Fatalf("process: %v", err)
	}
	transfers := newTestTransferService(t, db)

	transfer, err := transfers.CreateTransfer(CreateTransferInput{
		OrderID: order.ID,
		Stops:   []TransferStopInput{{NurseryID: nursery.ID, Role: string(models.StopPickup)}},
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	if _, err := transfers.StartTransfer(transfer.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := transfers.CancelTransfer(transfer.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancelling logistics reverses nothing in the ledger.
	assertCounters(t, reloadBatch(t, db, batch.ID), 10, 8, 2)
}

func TestActiveTransferUniqueIndexBacksServiceCheck(t *testing.T) {
	db := setupTestDB(t)
	nursery := createTestNursery(t, db, models.IntegrationPlatform)
	container := createTestContainer(t, db)
	batch := createTestBatch(t, db, nursery.ID, container.ID, 10)
	orders, _ := newTestOrderService(t, db)
	order := createTestOrder(t, db, orders, nursery.ID, batch.ID)
	transfers := newTestTransferService(t, db)

	stops := []TransferStopInput{{NurseryID: nursery.ID, Role: string(models.StopPickup)}}
	if _, err := transfers.CreateTransfer(CreateTransferInput{OrderID: order.ID, Stops: stops}); err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	// A second active row written directly, as a create that slipped past the
	// service's lookup would. The partial unique index must reject it.
	dup := &models.Transfer{OrderID: order.ID, Status: string(models.TransferPlanned)}
	if err := db.Create(dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	// Terminal rows stay out of the index predicate.
	done := &models.Transfer{OrderID: order.ID, Status: string(models.TransferCancelled)}
	if err := db.Create(done).Error; err != nil {
		t.Fatalf("cancelled transfer should not collide: %v", err)
	}
}
