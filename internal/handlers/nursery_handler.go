package handlers

import (
	"net/http"

	"nursery_manager/internal/models"
	"nursery_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type NurseryHandler struct {
	nurseryService services.NurseryService
}

func NewNurseryHandler(nurseryService services.NurseryService) *NurseryHandler {
	return &NurseryHandler{nurseryService: nurseryService}
}

func (h *NurseryHandler) CreateNursery(c *gin.Context) {
	var nursery models.Nursery
	if err := c.ShouldBindJSON(&nursery); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.nurseryService.CreateNursery(&nursery); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, nursery)
}

func (h *NurseryHandler) GetNurseries(c *gin.Context) {
	nurseries, err := h.nurseryService.GetNurseries()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nurseries)
}

func (h *NurseryHandler) GetNursery(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nursery id"})
		return
	}

	nursery, err := h.nurseryService.GetNursery(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nursery)
}

func (h *NurseryHandler) UpdateNursery(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nursery id"})
		return
	}

	var nursery models.Nursery
	if err := c.ShouldBindJSON(&nursery); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	nursery.ID = id

	if err := h.nurseryService.UpdateNursery(&nursery); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nursery)
}

func (h *NurseryHandler) DeleteNursery(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nursery id"})
		return
	}

	if err := h.nurseryService.DeleteNursery(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *NurseryHandler) CreateContainer(c *gin.Context) {
	var container models.Container
	if err := c.ShouldBindJSON(&container); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.nurseryService.CreateContainer(&container); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, container)
}

func (h *NurseryHandler) GetContainers(c *gin.Context) {
	containers, err := h.nurseryService.GetContainers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, containers)
}

func (h *NurseryHandler) DeleteContainer(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid container id"})
		return
	}

	if err := h.nurseryService.DeleteContainer(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
