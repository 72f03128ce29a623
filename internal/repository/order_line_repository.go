package repository

import (
	"nursery_manager/internal/models"

	"gorm.io/gorm"
)

type OrderLineRepository interface {
	GetByOrderID(orderID uint) ([]*models.OrderLine, error)
	GetByStockBatchID(batchID uint) ([]*models.OrderLine, error)
	Update(line *models.OrderLine) error
}

type orderLineRepository struct {
	db *gorm.DB
}

func NewOrderLineRepository(db *gorm.DB) OrderLineRepository {
	return &orderLineRepository{db: db}
}

func (r *orderLineRepository) GetByOrderID(orderID uint) ([]*models.OrderLine, error) {
	var lines []*models.OrderLine
	err := r.db.Where("order_id = ?", orderID).Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderLineRepository) GetByStockBatchID(batchID uint) ([]*models.OrderLine, error) {
	var lines []*models.OrderLine
	err := r.db.Where("stock_batch_id = ?", batchID).Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderLineRepository) Update(line *models.OrderLine) error {
	return r.db.Save(line).Error
}
