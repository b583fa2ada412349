package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"port-registry/models"
)

// The unique index is the final arbiter when two writers race on the
// same IMO; the loser must get gorm.ErrDuplicatedKey, not a duplicate
// row.
func TestShipUniqueIMOConstraint(t *testing.T) {
	db := newTestDB(t)
	shipRepo := NewShipRepository(db)

	require.NoError(t, shipRepo.Create(&models.Ship{Name: "First", IMO: "6000002"}))

	err := shipRepo.Create(&models.Ship{Name: "Second", IMO: "6000002"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := shipRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestExistsByIMOExcludesOwnRecord(t *testing.T) {
	db := newTestDB(t)
	shipRepo := NewShipRepository(db)

	ship := &models.Ship{Name: "Self", IMO: "6000003"}
	require.NoError(t, shipRepo.Create(ship))

	taken, err := shipRepo.ExistsByIMO("6000003", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = shipRepo.ExistsByIMO("6000003", ship.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestGetAllOrdersByRegistrationDesc(t *testing.T) {
	db := newTestDB(t)
	shipRepo := NewShipRepository(db)

	base := time.Now().Add(-time.Hour)
	for i, imo := range []string{"6100001", "6100002", "6100003"} {
		require.NoError(t, shipRepo.Create(&models.Ship{
			Name:         "Ship " + imo,
			IMO:          imo,
			RegisteredAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	ships, err := shipRepo.GetAll()
	require.NoError(t, err)
	require.Len(t, ships, 3)
	assert.Equal(t, "6100003", ships[0].IMO)
	assert.Equal(t, "6100001", ships[2].IMO)
}

func TestCountByTypeSkipsAbsentTypes(t *testing.T) {
	db := newTestDB(t)
	shipRepo := NewShipRepository(db)

	require.NoError(t, shipRepo.Create(&models.Ship{Name: "A", IMO: "6200001", Type: models.TypeFishing}))
	require.NoError(t, shipRepo.Create(&models.Ship{Name: "B", IMO: "6200002", Type: models.TypeFishing}))

	counts, err := shipRepo.CountByType()
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts[models.TypeFishing])
	_, present := counts[models.TypeCargo]
	assert.False(t, present)
}
