package repository

import (
	"library-lending/internal/domain/entity"

	"gorm.io/gorm"
)

type LibrarianProfileRepository interface {
	Create(db *gorm.DB, profile *entity.LibrarianProfile) error
	FindByUserID(db *gorm.DB, userID uint) (*entity.LibrarianProfile, error)
	FindAll(db *gorm.DB) ([]entity.LibrarianProfile, error)
	Update(db *gorm.DB, profile *entity.LibrarianProfile) error
	DeleteByUserID(db *gorm.DB, userID uint) (int64, error)
}
