package services

import (
	"errors"
	"fmt"
	"time"

	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"

	"gorm.io/gorm"
)

type SubmitMotherPlantInput struct {
	SpeciesID    uint       `json:"species_id"`
	SpeciesName  string     `json:"species_name"`
	VarietyID    *uint      `json:"variety_id"`
	VarietyName  string     `json:"variety_name"`
	PlaceName    string     `json:"place_name"`
	Address      string     `json:"address"`
	PlantingDate *time.Time `json:"planting_date"`
	Quantity     int        `json:"quantity"`
	Notes        string     `json:"notes"`
}

// MotherPlantService reviews member-submitted planting sites:
// pending -> validated or pending -> rejected, both terminal. Converting a
// validated plant into a stock batch is a manual follow-up, not done here.
type MotherPlantService interface {
	SubmitMotherPlant(input SubmitMotherPlantInput) (*models.MotherPlant, error)
	GetMotherPlant(id uint) (*models.MotherPlant, error)
	GetMotherPlants(status string) ([]models.MotherPlant, error)
	ValidateMotherPlant(id uint, validatedBy string) (*models.MotherPlant, error)
	RejectMotherPlant(id uint, validatedBy, notes string) (*models.MotherPlant, error)
}

type motherPlantService struct {
	plantRepo repository.MotherPlantRepository
}

func NewMotherPlantService(plantRepo repository.MotherPlantRepository) MotherPlantService {
	return &motherPlantService{plantRepo: plantRepo}
}

func (s *motherPlantService) SubmitMotherPlant(input SubmitMotherPlantInput) (*models.MotherPlant, error) {
	if input.SpeciesName == "" {
		return nil, fmt.Errorf("%w: species_name is required", ErrValidation)
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	plant := &models.MotherPlant{
		SpeciesID:    input.SpeciesID,
		SpeciesName:  input.SpeciesName,
		VarietyID:    input.VarietyID,
		VarietyName:  input.VarietyName,
		PlaceName:    input.PlaceName,
		Address:      input.Address,
		PlantingDate: input.PlantingDate,
		Quantity:     quantity,
		Status:       string(models.MotherPlantPending),
		Notes:        input.Notes,
	}
	if err := s.plantRepo.Create(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

func (s *motherPlantService) GetMotherPlant(id uint) (*models.MotherPlant, error) {
	plant, err := s.plantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mother plant %d", ErrNotFound, id)
		}
		return nil, err
	}
	return plant, nil
}

func (s *motherPlantService) GetMotherPlants(status string) ([]models.MotherPlant, error) {
	if status != "" {
		return s.plantRepo.GetByStatus(status)
	}
	return s.plantRepo.GetAll()
}

func (s *motherPlantService) ValidateMotherPlant(id uint, validatedBy string) (*models.MotherPlant, error) {
	plant, err := s.GetMotherPlant(id)
	if err != nil {
		return nil, err
	}
	if plant.Status != string(models.MotherPlantPending) {
		return nil, fmt.Errorf("%w: cannot validate mother plant in status %q", ErrInvalidTransition, plant.Status)
	}
	if validatedBy == "" {
		return nil, fmt.Errorf("%w: validated_by is required", ErrValidation)
	}

	now := time.Now()
	plant.Status = string(models.MotherPlantValidated)
	plant.ValidatedBy = validatedBy
	plant.ValidatedAt = &now
	if err := s.plantRepo.Update(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// RejectMotherPlant overwrites Notes with the rejection rationale; the model
// reuses the single notes column rather than carrying a separate one.
func (s *motherPlantService) RejectMotherPlant(id uint, validatedBy, notes string) (*models.MotherPlant, error) {
	plant, err := s.GetMotherPlant(id)
	if err != nil {
		return nil, err
	}
	if plant.Status != string(models.MotherPlantPending) {
		return nil, fmt.Errorf("%w: cannot reject mother plant in status %q", ErrInvalidTransition, plant.Status)
	}
	if validatedBy == "" {
		return nil, fmt.Errorf("%w: validated_by is required", ErrValidation)
	}

	now := time.Now()
	plant.Status = string(models.MotherPlantRejected)
	plant.ValidatedBy = validatedBy
	plant.ValidatedAt = &now
	plant.Notes = notes
	if err := s.plantRepo.Update(plant); err != nil {
		return nil, err
	}
	return plant, nil
}
