package handlers

import (
	"net/http"

	"nursery_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type MotherPlantHandler struct {
	plantService services.MotherPlantService
}

func NewMotherPlantHandler(plantService services.MotherPlantService) *MotherPlantHandler {
	return &MotherPlantHandler{plantService: plantService}
}

func (h *MotherPlantHandler) SubmitMotherPlant(c *gin.Context) {
	var input services.SubmitMotherPlantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	plant, err := h.plantService.SubmitMotherPlant(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plant)
}

func (h *MotherPlantHandler) GetMotherPlants(c *gin.Context) {
	plants, err := h.plantService.GetMotherPlants(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plants)
}

func (h *MotherPlantHandler) ValidateMotherPlant(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mother plant id"})
		return
	}

	var req struct {
		ValidatedBy string `json:"validated_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	plant, err := h.plantService.ValidateMotherPlant(id, req.ValidatedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plant)
}

func (h *MotherPlantHandler) RejectMotherPlant(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mother plant id"})
		return
	}

	var req struct {
		ValidatedBy string `json:"validated_by"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	plant, err := h.plantService.RejectMotherPlant(id, req.ValidatedBy, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plant)
}
