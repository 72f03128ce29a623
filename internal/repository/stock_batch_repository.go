package repository

import (
	"nursery_manager/internal/models"

	"gorm.io/gorm"
)

// CatalogRow is one stock batch joined with its nursery's integration mode,
// the raw material of the public catalog projection.
type CatalogRow struct {
	models.StockBatch
	NurseryName string
	Integration string
}

type StockBatchRepository interface {
	Create(batch *models.StockBatch) error
	GetByID(id uint) (*models.StockBatch, error)
	GetByNurseryID(nurseryID uint) ([]models.StockBatch, error)
	Update(batch *models.StockBatch) error
	CountByContainerID(containerID uint) (int64, error)
	CountByNurseryID(nurseryID uint) (int64, error)
	CatalogRows(speciesID, nurseryID *uint) ([]CatalogRow, error)
}

type stockBatchRepository struct {
	db *gorm.DB
}

func NewStockBatchRepository(db *gorm.DB) StockBatchRepository {
	return &stockBatchRepository{db: db}
}

func (r *stockBatchRepository) Create(batch *models.StockBatch) error {
	return r.db.Create(batch).Error
}

func (r *stockBatchRepository) GetByID(id uint) (*models.StockBatch, error) {
	var batch models.StockBatch
	err := r.db.First(&batch, id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *stockBatchRepository) GetByNurseryID(nurseryID uint) ([]models.StockBatch, error) {
	var batches []models.StockBatch
	err := r.db.Where("nursery_id = ?", nurseryID).Find(&batches).Error
	return batches, err
}

func (r *stockBatchRepository) Update(batch *models.StockBatch) error {
	return r.db.Save(batch).Error
}

func (r *stockBatchRepository) CountByContainerID(containerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.StockBatch{}).Where("container_id = ?", containerID).Count(&count).Error
	return count, err
}

func (r *stockBatchRepository) CountByNurseryID(nurseryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.StockBatch{}).Where("nursery_id = ?", nurseryID).Count(&count).Error
	return count, err
}

// CatalogRows joins non-deleted batches with their non-deleted nursery.
// Soft-deleted rows on either side drop out of the projection.
func (r *stockBatchRepository) CatalogRows(speciesID, nurseryID *uint) ([]CatalogRow, error) {
	query := r.db.Model(&models.StockBatch{}).
		Select("stock_batches.*, nurseries.name AS nursery_name, nurseries.integration AS integration").
		Joins("JOIN nurseries ON nurseries.id = stock_batches.nursery_id AND nurseries.deleted_at IS NULL")

	if speciesID != nil {
		query = query.Where("stock_batches.species_id = ?", *speciesID)
	}
	if nurseryID != nil {
		query = query.Where("stock_batches.nursery_id = ?", *nurseryID)
	}

	var rows []CatalogRow
	err := query.Order("stock_batches.species_name, stock_batches.id").Scan(&rows).Error
	return rows, err
}
