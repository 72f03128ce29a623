package repository

import (
	"nursery_manager/internal/models"

	"gorm.io/gorm"
)

type NurseryRepository interface {
	Create(nursery *models.Nursery) error
	GetByID(id uint) (*models.Nursery, error)
	GetAll() ([]models.Nursery, error)
	GetByIntegration(integration string) ([]models.Nursery, error)
	Update(nursery *models.Nursery) error
	Delete(id uint) error
}

type nurseryRepository struct {
	db *gorm.DB
}

func NewNurseryRepository(db *gorm.DB) NurseryRepository {
	return &nurseryRepository{db: db}
}

func (r *nurseryRepository) Create(nursery *models.Nursery) error {
	return r.db.Create(nursery).Error
}

func (r *nurseryRepository) GetByID(id uint) (*models.Nursery, error) {
	var nursery models.Nursery
	err := r.db.First(&nursery, id).Error
	if err != nil {
		return nil, err
	}
	return &nursery, nil
}

func (r *nurseryRepository) GetAll() ([]models.Nursery, error) {
	var nurseries []models.Nursery
	err := r.db.Order("name").Find(&nurseries).Error
	return nurseries, err
}

func (r *nurseryRepository) GetByIntegration(integration string) ([]models.Nursery, error) {
	var nurseries []models.Nursery
	err := r.db.Where("integration = ?", integration).Find(&nurseries).Error
	return nurseries, err
}

func (r *nurseryRepository) Update(nursery *models.Nursery) error {
	return r.db.Save(nursery).Error
}

// Delete soft-deletes; rows referenced by stock or orders keep their identity.
func (r *nurseryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Nursery{}, id).Error
}
