package models

import (
	"time"

	"gorm.io/gorm"
)

// Container is a pot/format descriptor referenced by stock batches.
type Container struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	ShortName    string         `json:"short_name"`
	SortOrder    int            `json:"sort_order" gorm:"default:0"`
	VolumeLiters *float64       `json:"volume_liters"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
