package services

import (
	"errors"
	"time"

	"port-registry/models"
	"port-registry/repositories"

	"gorm.io/gorm"
)

const imoTakenMessage = "a ship with this IMO number is already registered"

type ShipService interface {
	ListShips() ([]models.Ship, error)
	GetShip(id uint) (*models.Ship, error)
	CreateShip(req models.ShipRequest, registrar *models.User) (*models.Ship, error)
	UpdateShip(id uint, req models.ShipRequest) (*models.Ship, error)
	DeleteShip(id uint) (*models.Ship, error)
}

type shipService struct {
	shipRepo repositories.ShipRepository
}

func NewShipService(shipRepo repositories.ShipRepository) ShipService {
	return &shipService{shipRepo: shipRepo}
}

func (s *shipService) ListShips() ([]models.Ship, error) {
	return s.shipRepo.GetAll()
}

func (s *shipService) GetShip(id uint) (*models.Ship, error) {
	ship, err := s.shipRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return ship, nil
}

// CreateShip validates the candidate record, stamps the audit fields
// and persists it. A duplicate IMO, whether caught by the pre-check or
// by losing the race to the unique index, comes back as a field-level
// validation error and leaves the store unchanged.
func (s *shipService) CreateShip(req models.ShipRequest, registrar *models.User) (*models.Ship, error) {
	taken, err := s.shipRepo.ExistsByIMO(req.IMO, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewFieldError("imo", imoTakenMessage)
	}

	ship := &models.Ship{
		Name:         req.Name,
		IMO:          req.IMO,
		Flag:         req.Flag,
		Type:         req.Type,
		RegisteredAt: time.Now(),
	}
	if ship.Flag == "" {
		ship.Flag = models.DefaultFlag
	}
	if ship.Type == "" {
		ship.Type = models.DefaultShipType
	}
	if registrar != nil {
		ship.RegisteredByID = &registrar.ID
	}

	if err := s.shipRepo.Create(ship); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewFieldError("imo", imoTakenMessage)
		}
		return nil, err
	}

	return s.GetShip(ship.ID)
}

// UpdateShip applies the editable fields to an existing record. The
// audit fields are never touched, and the record's own IMO is not a
// self-collision.
func (s *shipService) UpdateShip(id uint, req models.ShipRequest) (*models.Ship, error) {
	ship, err := s.GetShip(id)
	if err != nil {
		return nil, err
	}

	taken, err := s.shipRepo.ExistsByIMO(req.IMO, ship.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewFieldError("imo", imoTakenMessage)
	}

	ship.Name = req.Name
	ship.IMO = req.IMO
	if req.Flag != "" {
		ship.Flag = req.Flag
	}
	if req.Type != "" {
		ship.Type = req.Type
	}

	if err := s.shipRepo.Update(ship); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewFieldError("imo", imoTakenMessage)
		}
		return nil, err
	}

	return s.GetShip(ship.ID)
}

// DeleteShip permanently removes the record and returns the removed
// ship so the caller can name it in the outcome. Irreversible.
func (s *shipService) DeleteShip(id uint) (*models.Ship, error) {
	ship, err := s.GetShip(id)
	if err != nil {
		return nil, err
	}

	if err := s.shipRepo.Delete(id); err != nil {
		return nil, err
	}

	return ship, nil
}
