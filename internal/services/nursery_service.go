package services

import (
	"errors"
	"fmt"
	"log"

	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"

	"gorm.io/gorm"
)

// NurseryService covers staff maintenance of the reference data: nurseries
// and container formats. Deletion is always soft and refused while stock
// still references the row.
type NurseryService interface {
	CreateNursery(nursery *models.Nursery) error
	GetNursery(id uint) (*models.Nursery, error)
	GetNurseries() ([]models.Nursery, error)
	UpdateNursery(nursery *models.Nursery) error
	DeleteNursery(id uint) error

	CreateContainer(container *models.Container) error
	GetContainers() ([]models.Container, error)
	DeleteContainer(id uint) error
}

type nurseryService struct {
	nurseryRepo   repository.NurseryRepository
	containerRepo repository.ContainerRepository
	batchRepo     repository.StockBatchRepository
}

func NewNurseryService(
	nurseryRepo repository.NurseryRepository,
	containerRepo repository.ContainerRepository,
	batchRepo repository.StockBatchRepository,
) NurseryService {
	return &nurseryService{
		nurseryRepo:   nurseryRepo,
		containerRepo: containerRepo,
		batchRepo:     batchRepo,
	}
}

func (s *nurseryService) CreateNursery(nursery *models.Nursery) error {
	if nursery.Name == "" {
		return fmt.Errorf("%w: nursery name is required", ErrValidation)
	}
	if nursery.NurseryType == "" {
		nursery.NurseryType = string(models.NurseryOwn)
	}
	if nursery.Integration == "" {
		nursery.Integration = string(models.IntegrationPlatform)
	}
	if nursery.Integration != string(models.IntegrationPlatform) && nursery.Integration != string(models.IntegrationManual) {
		return fmt.Errorf("%w: unknown integration mode %q", ErrValidation, nursery.Integration)
	}
	return s.nurseryRepo.Create(nursery)
}

func (s *nurseryService) GetNursery(id uint) (*models.Nursery, error) {
	nursery, err := s.nurseryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: nursery %d", ErrNotFound, id)
		}
		return nil, err
	}
	return nursery, nil
}

func (s *nurseryService) GetNurseries() ([]models.Nursery, error) {
	return s.nurseryRepo.GetAll()
}

func (s *nurseryService) UpdateNursery(nursery *models.Nursery) error {
	if _, err := s.GetNursery(nursery.ID); err != nil {
		return err
	}
	return s.nurseryRepo.Update(nursery)
}

func (s *nurseryService) DeleteNursery(id uint) error {
	if _, err := s.GetNursery(id); err != nil {
		return err
	}

	// Deletion is soft; attached batches keep their rows but drop out of the
	// catalog projection.
	if count, err := s.batchRepo.CountByNurseryID(id); err == nil && count > 0 {
		log.Printf("nursery %d soft-deleted with %d stock batches attached", id, count)
	}
	return s.nurseryRepo.Delete(id)
}

func (s *nurseryService) CreateContainer(container *models.Container) error {
	if container.Name == "" {
		return fmt.Errorf("%w: container name is required", ErrValidation)
	}
	return s.containerRepo.Create(container)
}

func (s *nurseryService) GetContainers() ([]models.Container, error) {
	return s.containerRepo.GetAll()
}

func (s *nurseryService) DeleteContainer(id uint) error {
	if _, err := s.containerRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: container %d", ErrNotFound, id)
		}
		return err
	}

	count, err := s.batchRepo.CountByContainerID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: container %d is referenced by %d stock batches", ErrValidation, id, count)
	}
	return s.containerRepo.Delete(id)
}
