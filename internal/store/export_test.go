package store

import (
	"testing"

	"gorm.io/gorm"
)

// NewTestStore returns a store on a transaction that is rolled back when the test ends,
// along with the transaction for seeding and inspecting rows
func NewTestStore(t *testing.T) (Store, *gorm.DB) {
	st := initPGTestDB(t)
	return st, dbOf(t, st)
}

var (
	OrderID         = orderID
	SeedOrder       = seedOrder
	SeedSingleToken = seedSingleToken
	GetToken        = getToken
	GetJob          = getJob
)
