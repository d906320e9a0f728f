package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the relational tables used by the
// GORM repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ScheduleModel{},
		&CrewMemberModel{},
		&UserModel{},
	)
}
