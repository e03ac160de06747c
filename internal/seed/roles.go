package seed

import (
	"commons/internal/roles"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Roles upserts the static role catalog. Safe to run on every boot; an
// existing row only has its display name refreshed.
func Roles(db *gorm.DB) error {
	for _, role := range roles.Catalog {
		row := role
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
		}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
