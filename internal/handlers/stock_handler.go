package handlers

import (
	"net/http"

	"nursery_manager/internal/models"
	"nursery_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	stockService services.StockService
}

func NewStockHandler(stockService services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

func (h *StockHandler) CreateStockBatch(c *gin.Context) {
	var batch models.StockBatch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.stockService.CreateBatch(&batch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *StockHandler) GetStockBatch(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch id"})
		return
	}

	batch, err := h.stockService.GetBatch(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// AddStock handles new arrivals and upward corrections; all adjustments go
// through the ledger, never through direct field writes.
func (h *StockHandler) AddStock(c *gin.Context) {
	h.adjust(c, h.stockService.AddStock)
}

// Shrink handles loss/shrinkage write-offs.
func (h *StockHandler) Shrink(c *gin.Context) {
	h.adjust(c, h.stockService.Shrink)
}

func (h *StockHandler) adjust(c *gin.Context, fn func(uint, int) error) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch id"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := fn(id, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	batch, err := h.stockService.GetBatch(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *StockHandler) SetManualAvailability(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch id"})
		return
	}

	var req struct {
		Available bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.stockService.SetManualAvailability(id, req.Available); err != nil {
		respondError(c, err)
		return
	}

	batch, err := h.stockService.GetBatch(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}
