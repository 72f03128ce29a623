package models

import (
	"time"

	"gorm.io/gorm"
)

// MotherPlant is a member-proposed or staff-identified source plant for
// future propagation. Notes double as the rejection rationale.
type MotherPlant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	SpeciesID    uint           `json:"species_id" gorm:"not null"`
	SpeciesName  string         `json:"species_name" gorm:"not null"`
	VarietyID    *uint          `json:"variety_id"`
	VarietyName  string         `json:"variety_name"`
	PlaceName    string         `json:"place_name"`
	Address      string         `json:"address"`
	PlantingDate *time.Time     `json:"planting_date"`
	Quantity     int            `json:"quantity" gorm:"default:1"`
	Status       string         `json:"status" gorm:"default:'pending'"` // pending, validated, rejected
	ValidatedBy  string         `json:"validated_by"`
	ValidatedAt  *time.Time     `json:"validated_at"`
	Notes        string         `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type MotherPlantStatus string

const (
	MotherPlantPending   MotherPlantStatus = "pending"
	MotherPlantValidated MotherPlantStatus = "validated"
	MotherPlantRejected  MotherPlantStatus = "rejected"
)
