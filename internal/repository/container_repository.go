package repository

import (
	"nursery_manager/internal/models"

	"gorm.io/gorm"
)

type ContainerRepository interface {
	Create(container *models.Container) error
	GetByID(id uint) (*models.Container, error)
	GetAll() ([]models.Container, error)
	Update(container *models.Container) error
	Delete(id uint) error
}

type containerRepository struct {
	db *gorm.DB
}

func NewContainerRepository(db *gorm.DB) ContainerRepository {
	return &containerRepository{db: db}
}

func (r *containerRepository) Create(container *models.Container) error {
	return r.db.Create(container).Error
}

func (r *containerRepository) GetByID(id uint) (*models.Container, error) {
	var container models.Container
	err := r.db.First(&container, id).Error
	if err != nil {
		return nil, err
	}
	return &container, nil
}

func (r *containerRepository) GetAll() ([]models.Container, error) {
	var containers []models.Container
	err := r.db.Order("sort_order, name").Find(&containers).Error
	return containers, err
}

func (r *containerRepository) Update(container *models.Container) error {
	return r.db.Save(container).Error
}

func (r *containerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Container{}, id).Error
}
