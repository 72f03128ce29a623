package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderLine is one stock batch's contribution to an order. Species, container
// and nursery names are denormalized at creation time so invoices stay stable
// if the batch changes later. Lines are immutable once the order leaves "new".
// Reserved flags whether this line currently holds stock committed on its
// batch; the order service flips it on reserve and clears it on
// release/consume so a double release is caught instead of corrupting counts.
type OrderLine struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrderID        uint           `json:"order_id" gorm:"not null;index"`
	StockBatchID   uint           `json:"stock_batch_id" gorm:"not null;index"`
	SpeciesName    string         `json:"species_name" gorm:"not null"`
	ContainerName  string         `json:"container_name"`
	NurseryName    string         `json:"nursery_name"`
	Quantity       int            `json:"quantity" gorm:"not null"`
	UnitPriceEuros float64        `json:"unit_price_euros"`
	UnitPriceSemos *float64       `json:"unit_price_semos"`
	PayInSemos     bool           `json:"pay_in_semos" gorm:"default:false"`
	Reserved       bool           `json:"reserved" gorm:"default:false"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
