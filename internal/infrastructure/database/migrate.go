package database

import (
	"fmt"

	"library-lending/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates the schema and seeds the fixed role rows. The role IDs are
// load-bearing: entity.RoleID* constants assume this exact seeding.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.ReaderProfile{},
		&entity.LibrarianProfile{},
		&entity.AdminProfile{},
		&entity.Book{},
		&entity.BorrowRecord{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Full administrative access"},
		{ID: entity.RoleIDLibrarian, RoleName: entity.RoleLibrarian, Description: "Catalog and circulation management"},
		{ID: entity.RoleIDReader, RoleName: entity.RoleReader, Description: "Library member"},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	return nil
}
