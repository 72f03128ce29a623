package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"nursery_manager/internal/database"
	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"
	"nursery_manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	stockService := services.NewStockService(db, nil)
	orderService := services.NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewOrderLineRepository(db),
		repository.NewNurseryRepository(db),
		repository.NewStockBatchRepository(db),
		stockService,
	)

	orderHandler := NewOrderHandler(orderService)
	stockHandler := NewStockHandler(stockService)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/orders", orderHandler.CreateOrder)
	api.GET("/orders/:id", orderHandler.GetOrder)
	api.PATCH("/orders/:id/process", orderHandler.ProcessOrder)
	api.PATCH("/orders/:id/ready", orderHandler.MarkReady)
	api.PATCH("/orders/:id/pickup", orderHandler.MarkPickedUp)
	api.PATCH("/orders/:id/cancel", orderHandler.CancelOrder)
	api.POST("/stock-batches", stockHandler.CreateStockBatch)
	api.GET("/stock-batches/:id", stockHandler.GetStockBatch)

	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOrderFlowOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)

	nursery := &models.Nursery{Name: "Pépinière", Integration: string(models.IntegrationPlatform)}
	if err := db.Create(nursery).Error; err != nil {
		t.Fatalf("create nursery: %v", err)
	}
	container := &models.Container{Name: "Pot 1L"}
	if err := db.Create(container).Error; err != nil {
		t.Fatalf("create container: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/api/stock-batches", gin.H{
		"nursery_id":   nursery.ID,
		"container_id": container.ID,
		"species_id":   1,
		"species_name": "Quercus robur",
		"quantity":     10,
		"price_euros":  12.5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create batch: status %d body %s", w.Code, w.Body.String())
	}
	var batch models.StockBatch
	if err := json.Unmarshal(w.Body.Bytes(), &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}

	w = doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"pickup_nursery_id": nursery.ID,
		"customer_name":     "Jeanne Martin",
		"customer_email":    "jeanne@example.org",
		"lines": []gin.H{
			{"stock_batch_id": batch.ID, "quantity": 4},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status %d body %s", w.Code, w.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%d/process", order.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("process: status %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%d/ready", order.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ready: status %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%d/pickup", order.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pickup: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/stock-batches/%d", batch.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get batch: status %d", w.Code)
	}
	var after models.StockBatch
	if err := json.Unmarshal(w.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if after.Quantity != 10 || after.AvailableQuantity != 6 || after.ReservedQuantity != 0 {
		t.Fatalf("counters after pickup = %d/%d/%d, want 10/6/0",
			after.Quantity, after.AvailableQuantity, after.ReservedQuantity)
	}

	// Terminal state over HTTP maps to 409.
	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%d/cancel", order.ID), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("cancel picked-up order: status %d, want 409", w.Code)
	}
}

func TestInsufficientStockOverHTTP(t *testing.T) {
	router, db := setupTestRouter(t)

	nursery := &models.Nursery{Name: "Pépinière", Integration: string(models.IntegrationPlatform)}
	if err := db.Create(nursery).Error; err != nil {
		t.Fatalf("create nursery: %v", err)
	}
	container := &models.Container{Name: "Pot 1L"}
	if err := db.Create(container).Error; err != nil {
		t.Fatalf("create container: %v", err)
	}
	batch := &models.StockBatch{
		NurseryID: nursery.ID, ContainerID: container.ID,
		SpeciesID: 1, SpeciesName: "Quercus robur",
		Quantity: 3, AvailableQuantity: 3, PriceEuros: 10,
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("create batch: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"pickup_nursery_id": nursery.ID,
		"customer_name":     "Paul Leroy",
		"customer_email":    "paul@example.org",
		"lines": []gin.H{
			{"stock_batch_id": batch.ID, "quantity": 5},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status %d body %s", w.Code, w.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%d/process", order.ID), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("process with short stock: status %d, want 409", w.Code)
	}

	var check models.StockBatch
	if err := db.First(&check, batch.ID).Error; err != nil {
		t.Fatalf("reload batch: %v", err)
	}
	if check.AvailableQuantity != 3 || check.ReservedQuantity != 0 {
		t.Fatalf("counters moved on failed reservation: %d/%d", check.AvailableQuantity, check.ReservedQuantity)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get order: status %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Status != string(models.OrderNew) {
		t.Fatalf("order status %q after failed processing, want new", order.Status)
	}
}
