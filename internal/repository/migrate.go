package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema for every persisted record. cmd/seed
// and the test suites use it; production deployments run real
// migrations against Postgres.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&propertyModel{},
		&tableModel{},
		&roomModel{},
		&bookingModel{},
		&tokenIssuanceModel{},
		&orderModel{},
		&orderItemModel{},
		&orderStatusEventModel{},
		&serviceRequestModel{},
		&requestStatusEventModel{},
		&staffModel{},
	)
}
