package repository

import (
	"library-lending/internal/domain/entity"

	"gorm.io/gorm"
)

type ReaderProfileRepository interface {
	Create(db *gorm.DB, profile *entity.ReaderProfile) error
	FindByID(db *gorm.DB, readerID uint) (*entity.ReaderProfile, error)
	FindByUserID(db *gorm.DB, userID uint) (*entity.ReaderProfile, error)
	FindAll(db *gorm.DB) ([]entity.ReaderProfile, error)
	Update(db *gorm.DB, profile *entity.ReaderProfile) error
	IncrementTotalBorrowed(db *gorm.DB, readerID uint) error
	Count(db *gorm.DB) (int64, error)
}
