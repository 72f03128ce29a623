package models

import (
	"time"

	"gorm.io/gorm"
)

type Nursery struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	NurseryType  string         `json:"nursery_type" gorm:"default:'own'"`     // own, partner
	Integration  string         `json:"integration" gorm:"default:'platform'"` // platform, manual
	Address      string         `json:"address"`
	City         string         `json:"city"`
	PostalCode   string         `json:"postal_code"`
	ContactName  string         `json:"contact_name"`
	ContactEmail string         `json:"contact_email"`
	ContactPhone string         `json:"contact_phone"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type NurseryType string

const (
	NurseryOwn     NurseryType = "own"
	NurseryPartner NurseryType = "partner"
)

// IntegrationMode controls how much stock detail the platform tracks for a
// nursery: platform nurseries carry exact counters, manual nurseries only a
// coarse availability flag.
type IntegrationMode string

const (
	IntegrationPlatform IntegrationMode = "platform"
	IntegrationManual   IntegrationMode = "manual"
)
