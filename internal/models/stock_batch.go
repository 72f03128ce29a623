package models

import (
	"time"

	"gorm.io/gorm"
)

// StockBatch is a homogeneous lot of one species/variety in one container at
// one nursery. Quantity is the historical lot size; AvailableQuantity and
// ReservedQuantity track sellable and order-committed stock and must satisfy
// available + reserved <= quantity with both >= 0 at all times. The counters
// are mutated only by the stock service, never by order code.
type StockBatch struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	NurseryID         uint           `json:"nursery_id" gorm:"not null;index"`
	ContainerID       uint           `json:"container_id" gorm:"not null"`
	SpeciesID         uint           `json:"species_id" gorm:"not null;index"`
	SpeciesName       string         `json:"species_name" gorm:"not null"`
	VarietyID         *uint          `json:"variety_id"`
	VarietyName       string         `json:"variety_name"`
	GrowthStage       string         `json:"growth_stage"`
	Origin            string         `json:"origin"`
	SowingDate        *time.Time     `json:"sowing_date"`
	Quantity          int            `json:"quantity" gorm:"not null;default:0"`
	AvailableQuantity int            `json:"available_quantity" gorm:"not null;default:0"`
	ReservedQuantity  int            `json:"reserved_quantity" gorm:"not null;default:0"`
	PriceEuros        float64        `json:"price_euros" gorm:"not null"`
	PriceSemos        *float64       `json:"price_semos"`
	AcceptsSemos      bool           `json:"accepts_semos" gorm:"default:false"`
	ManualAvailable   bool           `json:"manual_available" gorm:"default:false"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
