package models

import (
	"time"

	"gorm.io/gorm"
)

// Transfer is a logistics run fulfilling one order's multi-nursery
// pickup/delivery. An order has at most one transfer that is not cancelled.
type Transfer struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrderID         uint           `json:"order_id" gorm:"not null;index"`
	Status          string         `json:"status" gorm:"default:'planned'"` // planned, in_progress, completed, cancelled
	ScheduledDate   *time.Time     `json:"scheduled_date"`
	DriverName      string         `json:"driver_name"`
	VehicleInfo     string         `json:"vehicle_info"`
	TotalDistanceKm float64        `json:"total_distance_km"`
	CompletedAt     *time.Time     `json:"completed_at"`
	Stops           []TransferStop `json:"stops" gorm:"foreignKey:TransferID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TransferStop is one leg of a transfer, ordered by Position.
type TransferStop struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	TransferID uint           `json:"transfer_id" gorm:"not null;index"`
	NurseryID  uint           `json:"nursery_id" gorm:"not null"`
	Role       string         `json:"role" gorm:"not null"` // pickup, dropoff
	Position   int            `json:"position" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type TransferStatus string

const (
	TransferPlanned    TransferStatus = "planned"
	TransferInProgress TransferStatus = "in_progress"
	TransferCompleted  TransferStatus = "completed"
	TransferCancelled  TransferStatus = "cancelled"
)

type StopRole string

const (
	StopPickup  StopRole = "pickup"
	StopDropoff StopRole = "dropoff"
)
