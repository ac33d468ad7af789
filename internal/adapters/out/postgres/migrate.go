package postgres

import (
	"freight/internal/adapters/out/postgres/assignmentrepo"
	"freight/internal/adapters/out/postgres/bidrepo"
	"freight/internal/adapters/out/postgres/carrierrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the dispatch schema. The live-bid uniqueness
// backstop is a partial index, which GORM tags cannot express, so it is
// created explicitly after AutoMigrate.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&bidrepo.BidDTO{},
		&assignmentrepo.AssignmentDTO{},
		&carrierrepo.CarrierProfileDTO{},
		&vehiclerepo.VehicleDTO{},
	)
	if err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bids_one_live_per_carrier
		ON bids (order_id, carrier_id)
		WHERE status <> 'WITHDRAWN'
	`).Error
}
