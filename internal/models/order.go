package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrderNumber     string         `json:"order_number" gorm:"unique;not null"`
	PickupNurseryID uint           `json:"pickup_nursery_id" gorm:"not null;index"`
	CustomerName    string         `json:"customer_name" gorm:"not null"`
	CustomerEmail   string         `json:"customer_email" gorm:"not null"`
	CustomerPhone   string         `json:"customer_phone"`
	IsMember        bool           `json:"is_member" gorm:"default:false"`
	PriceLevel      string         `json:"price_level" gorm:"default:'standard'"` // standard, member
	Status          string         `json:"status" gorm:"default:'new'"`           // new, processing, ready, picked_up, cancelled
	SubtotalEuros   float64        `json:"subtotal_euros"`
	SubtotalSemos   float64        `json:"subtotal_semos"`
	TotalEuros      float64        `json:"total_euros"`
	TotalSemos      float64        `json:"total_semos"`
	Lines           []OrderLine    `json:"lines" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderNew        OrderStatus = "new"
	OrderProcessing OrderStatus = "processing"
	OrderReady      OrderStatus = "ready"
	OrderPickedUp   OrderStatus = "picked_up"
	OrderCancelled  OrderStatus = "cancelled"
)

type PriceLevel string

const (
	PriceStandard PriceLevel = "standard"
	PriceMember   PriceLevel = "member"
)
