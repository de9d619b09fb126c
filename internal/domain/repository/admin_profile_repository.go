package repository

import (
	"library-lending/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminProfileRepository interface {
	Create(db *gorm.DB, profile *entity.AdminProfile) error
	FindByUserID(db *gorm.DB, userID uint) (*entity.AdminProfile, error)
	Update(db *gorm.DB, profile *entity.AdminProfile) error
	DeleteByUserID(db *gorm.DB, userID uint) (int64, error)
}
