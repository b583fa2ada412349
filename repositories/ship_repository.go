package repositories

import (
	"port-registry/models"

	"gorm.io/gorm"
)

type ShipRepository interface {
	Create(ship *models.Ship) error
	GetByID(id uint) (*models.Ship, error)
	GetAll() ([]models.Ship, error)
	ExistsByIMO(imo string, excludeID uint) (bool, error)
	Update(ship *models.Ship) error
	Delete(id uint) error
	Count() (int64, error)
	CountByType() (map[models.ShipType]int64, error)
	CountByRegistrar(userID uint) (int64, error)
}

type shipRepository struct {
	db *gorm.DB
}

func NewShipRepository(db *gorm.DB) ShipRepository {
	return &shipRepository{db: db}
}

func (r *shipRepository) Create(ship *models.Ship) error {
	return r.db.Create(ship).Error
}

func (r *shipRepository) GetByID(id uint) (*models.Ship, error) {
	var ship models.Ship
	err := r.db.Preload("RegisteredBy").First(&ship, id).Error
	return &ship, err
}

// GetAll returns every ship, most recently registered first. The
// ordering is a standing invariant of the listing view.
func (r *shipRepository) GetAll() ([]models.Ship, error) {
	var ships []models.Ship
	err := r.db.Preload("RegisteredBy").
		Order("registered_at desc").
		Find(&ships).Error
	return ships, err
}

// ExistsByIMO reports whether another ship already carries this IMO.
// excludeID skips the record being edited so its own IMO is not a
// self-collision; pass 0 when creating.
func (r *shipRepository) ExistsByIMO(imo string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Ship{}).Where("imo = ?", imo)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *shipRepository) Update(ship *models.Ship) error {
	return r.db.Save(ship).Error
}

// Delete permanently removes the ship. There is no soft delete.
func (r *shipRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ship{}, id).Error
}

func (r *shipRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Ship{}).Count(&count).Error
	return count, err
}

// CountByType groups the fleet by vessel type. Types with no ships are
// simply absent from the map.
func (r *shipRepository) CountByType() (map[models.ShipType]int64, error) {
	var results []struct {
		Type  models.ShipType
		Count int64
	}

	err := r.db.Model(&models.Ship{}).
		Select("type, count(*) as count").
		Group("type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ShipType]int64)
	for _, result := range results {
		counts[result.Type] = result.Count
	}

	return counts, nil
}

func (r *shipRepository) CountByRegistrar(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ship{}).
		Where("registered_by_id = ?", userID).
		Count(&count).Error
	return count, err
}
