package repository

import (
	"nursery_manager/internal/models"

	"gorm.io/gorm"
)

type MotherPlantRepository interface {
	Create(plant *models.MotherPlant) error
	GetByID(id uint) (*models.MotherPlant, error)
	GetByStatus(status string) ([]models.MotherPlant, error)
	GetAll() ([]models.MotherPlant, error)
	Update(plant *models.MotherPlant) error
}

type motherPlantRepository struct {
	db *gorm.DB
}

func NewMotherPlantRepository(db *gorm.DB) MotherPlantRepository {
	return &motherPlantRepository{db: db}
}

func (r *motherPlantRepository) Create(plant *models.MotherPlant) error {
	return r.db.Create(plant).Error
}

func (r *motherPlantRepository) GetByID(id uint) (*models.MotherPlant, error) {
	var plant models.MotherPlant
	err := r.db.First(&plant, id).Error
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

func (r *motherPlantRepository) GetByStatus(status string) ([]models.MotherPlant, error) {
	var plants []models.MotherPlant
	err := r.db.Where("status = ?", status).Find(&plants).Error
	return plants, err
}

func (r *motherPlantRepository) GetAll() ([]models.MotherPlant, error) {
	var plants []models.MotherPlant
	err := r.db.Order("created_at DESC").Find(&plants).Error
	return plants, err
}

func (r *motherPlantRepository) Update(plant *models.MotherPlant) error {
	return r.db.Save(plant).Error
}
