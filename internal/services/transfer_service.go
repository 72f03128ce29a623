package services

import (
	"errors"
	"fmt"
	"time"

	"nursery_manager/internal/models"
	"nursery_manager/internal/repository"

	"gorm.io/gorm"
)

// TransferStopInput is one requested leg of a transfer run.
type TransferStopInput struct {
	NurseryID uint   `json:"nursery_id"`
	Role      string `json:"role"`
}

type CreateTransferInput struct {
	OrderID         uint                `json:"order_id"`
	ScheduledDate   *time.Time          `json:"scheduled_date"`
	DriverName      string              `json:"driver_name"`
	VehicleInfo     string              `json:"vehicle_info"`
	TotalDistanceKm float64             `json:"total_distance_km"`
	Stops           []TransferStopInput `json:"stops"`
}

// TransferService owns the pickup/delivery state machine:
// planned -> in_progress -> completed, cancel from any non-terminal state.
// Transfers never touch stock; that belongs to the order engine.
type TransferService interface {
	CreateTransfer(input CreateTransferInput) (*models.Transfer, error)
	GetTransfer(id uint) (*models.Transfer, error)
	StartTransfer(id uint) (*models.Transfer, error)
	CompleteTransfer(id uint) (*models.Transfer, error)
	CancelTransfer(id uint) (*models.Transfer, error)
}

type transferService struct {
	transferRepo repository.TransferRepository
	orderRepo    repository.OrderRepository
	nurseryRepo  repository.NurseryRepository
}

func NewTransferService(
	transferRepo repository.TransferRepository,
	orderRepo repository.OrderRepository,
	nurseryRepo repository.NurseryRepository,
) TransferService {
	return &transferService{
		transferRepo: transferRepo,
		orderRepo:    orderRepo,
		nurseryRepo:  nurseryRepo,
	}
}

func (s *transferService) CreateTransfer(input CreateTransferInput) (*models.Transfer, error) {
	if _, err := s.orderRepo.GetByID(input.OrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, input.OrderID)
		}
		return nil, err
	}

	// One active (planned or in-progress) transfer per order.
	if existing, err := s.transferRepo.GetActiveByOrderID(input.OrderID); err == nil {
		return nil, fmt.Errorf("%w: order %d already has active transfer %d", ErrValidation, input.OrderID, existing.ID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if len(input.Stops) == 0 {
		return nil, fmt.Errorf("%w: transfer needs at least one stop", ErrValidation)
	}

	transfer := &models.Transfer{
		OrderID:         input.OrderID,
		Status:          string(models.TransferPlanned),
		ScheduledDate:   input.ScheduledDate,
		DriverName:      input.DriverName,
		VehicleInfo:     input.VehicleInfo,
		TotalDistanceKm: input.TotalDistanceKm,
	}

	for i, stop := range input.Stops {
		if stop.Role != string(models.StopPickup) && stop.Role != string(models.StopDropoff) {
			return nil, fmt.Errorf("%w: stop %d has unknown role %q", ErrValidation, i+1, stop.Role)
		}
		if _, err := s.nurseryRepo.GetByID(stop.NurseryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: nursery %d on stop %d", ErrNotFound, stop.NurseryID, i+1)
			}
			return nil, err
		}
		transfer.Stops = append(transfer.Stops, models.TransferStop{
			NurseryID: stop.NurseryID,
			Role:      stop.Role,
			Position:  i + 1,
		})
	}

	if err := s.transferRepo.Create(transfer); err != nil {
		// The partial unique index on active transfers catches creates that
		// raced past the check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: order %d already has an active transfer", ErrValidation, input.OrderID)
		}
		return nil, err
	}
	return transfer, nil
}

func (s *transferService) GetTransfer(id uint) (*models.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transfer %d", ErrNotFound, id)
		}
		return nil, err
	}
	return transfer, nil
}

func (s *transferService) StartTransfer(id uint) (*models.Transfer, error) {
	transfer, err := s.GetTransfer(id)
	if err != nil {
		return nil, err
	}
	if transfer.Status != string(models.TransferPlanned) {
		return nil, fmt.Errorf("%w: cannot start transfer in status %q", ErrInvalidTransition, transfer.Status)
	}

	transfer.Status = string(models.TransferInProgress)
	if err := s.transferRepo.Update(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

func (s *transferService) CompleteTransfer(id uint) (*models.Transfer, error) {
	transfer, err := s.GetTransfer(id)
	if err != nil {
		return nil, err
	}
	if transfer.Status != string(models.TransferInProgress) {
		return nil, fmt.Errorf("%w: cannot complete transfer in status %q", ErrInvalidTransition, transfer.Status)
	}

	now := time.Now()
	transfer.Status = string(models.TransferCompleted)
	transfer.CompletedAt = &now
	if err := s.transferRepo.Update(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

func (s *transferService) CancelTransfer(id uint) (*models.Transfer, error) {
	transfer, err := s.GetTransfer(id)
	if err != nil {
		return nil, err
	}
	switch transfer.Status {
	case string(models.TransferPlanned), string(models.TransferInProgress):
	default:
		return nil, fmt.Errorf("%w: cannot cancel transfer in status %q", ErrInvalidTransition, transfer.Status)
	}

	transfer.Status = string(models.TransferCancelled)
	if err := s.transferRepo.Update(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}
