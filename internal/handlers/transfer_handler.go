package handlers

import (
	"net/http"

	"nursery_manager/internal/models"
	"nursery_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct {
	transferService services.TransferService
}

func NewTransferHandler(transferService services.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var input services.CreateTransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	transfer, err := h.transferService.CreateTransfer(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

func (h *TransferHandler) GetTransfer(c *gin.Context) {
	h.transition(c, h.transferService.GetTransfer)
}

func (h *TransferHandler) StartTransfer(c *gin.Context) {
	h.transition(c, h.transferService.StartTransfer)
}

func (h *TransferHandler) CompleteTransfer(c *gin.Context) {
	h.transition(c, h.transferService.CompleteTransfer)
}

func (h *TransferHandler) CancelTransfer(c *gin.Context) {
	h.transition(c, h.transferService.CancelTransfer)
}

func (h *TransferHandler) transition(c *gin.Context, fn func(uint) (*models.Transfer, error)) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer id"})
		return
	}

	transfer, err := fn(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transfer)
}
