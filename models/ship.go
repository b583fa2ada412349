package models

import (
	"time"
)

type ShipType string

const (
	TypeCargo     ShipType = "cargo"
	TypePassenger ShipType = "passenger"
	TypeTanker    ShipType = "tanker"
	TypeFishing   ShipType = "fishing"
	TypeOther     ShipType = "other"
)

const (
	DefaultFlag     = "Ecuador"
	DefaultShipType = TypeCargo
)

// Ship is a vessel registered at the port. RegisteredByID and
// RegisteredAt are audit fields stamped once at creation; deleting the
// registering user nulls the reference instead of cascading.
type Ship struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	Name           string    `json:"name" gorm:"not null"`
	IMO            string    `json:"imo" gorm:"uniqueIndex;not null"`
	Flag           string    `json:"flag" gorm:"default:'Ecuador'"`
	Type           ShipType  `json:"type" gorm:"default:'cargo'"`
	RegisteredAt   time.Time `json:"registered_at" gorm:"autoCreateTime"`
	RegisteredByID *uint     `json:"registered_by_id"`
	RegisteredBy   *User     `json:"registered_by,omitempty" gorm:"foreignKey:RegisteredByID;constraint:OnDelete:SET NULL"`
}
