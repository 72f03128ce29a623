package handlers

import (
	"net/http"
	"strconv"

	"nursery_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	speciesID, err := parseOptionalID(c.Query("species_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid species_id"})
		return
	}
	nurseryID, err := parseOptionalID(c.Query("nursery_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nursery_id"})
		return
	}

	entries, err := h.catalogService.GetCatalog(speciesID, nurseryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func parseOptionalID(raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	value := uint(id)
	return &value, nil
}
