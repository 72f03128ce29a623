package repository

import (
	"nursery_manager/internal/models"

	"gorm.io/gorm"
)

type TransferRepository interface {
	Create(transfer *models.Transfer) error
	GetByID(id uint) (*models.Transfer, error)
	GetActiveByOrderID(orderID uint) (*models.Transfer, error)
	GetByStatus(status string) ([]models.Transfer, error)
	Update(transfer *models.Transfer) error
}

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(transfer *models.Transfer) error {
	return r.db.Create(transfer).Error
}

func (r *transferRepository) GetByID(id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	err := r.db.Preload("Stops", func(db *gorm.DB) *gorm.DB {
		return db.Order("transfer_stops.position")
	}).First(&transfer, id).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// GetActiveByOrderID returns the order's planned or in-progress transfer,
// gorm.ErrRecordNotFound if there is none.
func (r *transferRepository) GetActiveByOrderID(orderID uint) (*models.Transfer, error) {
	var transfer models.Transfer
	err := r.db.Where("order_id = ? AND status IN ?", orderID,
		[]string{string(models.TransferPlanned), string(models.TransferInProgress)}).
		First(&transfer).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepository) GetByStatus(status string) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := r.db.Preload("Stops").Where("status = ?", status).Find(&transfers).Error
	return transfers, err
}

func (r *transferRepository) Update(transfer *models.Transfer) error {
	return r.db.Save(transfer).Error
}
