package services

import (
	"fmt"
	"log"
	"time"

	"nursery_manager/internal/models"
	"nursery_manager/internal/redis"
	"nursery_manager/internal/repository"
)

// CatalogEntry is the public view of one stock batch. For platform-integrated
// nurseries the counters are exact; for manually managed partner nurseries
// AvailableQuantity and ReservedQuantity stay nil and only the Available flag
// is published.
type CatalogEntry struct {
	StockBatchID      uint     `json:"stock_batch_id"`
	NurseryID         uint     `json:"nursery_id"`
	NurseryName       string   `json:"nursery_name"`
	Integration       string   `json:"integration"`
	SpeciesID         uint     `json:"species_id"`
	SpeciesName       string   `json:"species_name"`
	VarietyID         *uint    `json:"variety_id,omitempty"`
	VarietyName       string   `json:"variety_name,omitempty"`
	ContainerID       uint     `json:"container_id"`
	GrowthStage       string   `json:"growth_stage,omitempty"`
	PriceEuros        float64  `json:"price_euros"`
	PriceSemos        *float64 `json:"price_semos,omitempty"`
	AcceptsSemos      bool     `json:"accepts_semos"`
	AvailableQuantity *int     `json:"available_quantity,omitempty"`
	ReservedQuantity  *int     `json:"reserved_quantity,omitempty"`
	Available         bool     `json:"available"`
}

// CatalogService is a read-only projection; it never mutates a batch.
type CatalogService interface {
	GetCatalog(speciesID, nurseryID *uint) ([]CatalogEntry, error)
}

type catalogService struct {
	batchRepo repository.StockBatchRepository
	cache     *redis.Client
	cacheTTL  time.Duration
}

func NewCatalogService(batchRepo repository.StockBatchRepository, cache *redis.Client, cacheTTL time.Duration) CatalogService {
	return &catalogService{batchRepo: batchRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *catalogService) GetCatalog(speciesID, nurseryID *uint) ([]CatalogEntry, error) {
	key := catalogCacheKey(speciesID, nurseryID)

	if s.cache != nil {
		var cached []CatalogEntry
		if hit, err := s.cache.GetCatalog(key, &cached); err != nil {
			log.Printf("Warning: catalog cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	rows, err := s.batchRepo.CatalogRows(speciesID, nurseryID)
	if err != nil {
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(rows))
	for _, row := range rows {
		entry := CatalogEntry{
			StockBatchID: row.ID,
			NurseryID:    row.NurseryID,
			NurseryName:  row.NurseryName,
			Integration:  row.Integration,
			SpeciesID:    row.SpeciesID,
			SpeciesName:  row.SpeciesName,
			VarietyID:    row.VarietyID,
			VarietyName:  row.VarietyName,
			ContainerID:  row.ContainerID,
			GrowthStage:  row.GrowthStage,
			PriceEuros:   row.PriceEuros,
			PriceSemos:   row.PriceSemos,
			AcceptsSemos: row.AcceptsSemos,
		}

		if row.Integration == string(models.IntegrationPlatform) {
			available := row.AvailableQuantity
			reserved := row.ReservedQuantity
			entry.AvailableQuantity = &available
			entry.ReservedQuantity = &reserved
			entry.Available = available > 0
		} else {
			// Partner-managed stock: counts are not tracked, only the
			// staff-declared flag goes out.
			entry.Available = row.ManualAvailable
		}

		entries = append(entries, entry)
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(key, entries, s.cacheTTL); err != nil {
			log.Printf("Warning: catalog cache write failed: %v", err)
		}
	}
	return entries, nil
}

func catalogCacheKey(speciesID, nurseryID *uint) string {
	species, nursery := "all", "all"
	if speciesID != nil {
		species = fmt.Sprintf("%d", *speciesID)
	}
	if nurseryID != nil {
		nursery = fmt.Sprintf("%d", *nurseryID)
	}
	return fmt.Sprintf("species=%s:nursery=%s", species, nursery)
}
