package repository

import (
	"errors"

	"library-lending/internal/domain/entity"
	domainRepo "library-lending/internal/domain/repository"

	"gorm.io/gorm"
)

type librarianProfileRepository struct{}

func NewLibrarianProfileRepository() domainRepo.LibrarianProfileRepository {
	return &librarianProfileRepository{}
}

func (r *librarianProfileRepository) Create(db *gorm.DB, profile *entity.LibrarianProfile) error {
	return db.Create(profile).Error
}

func (r *librarianProfileRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.LibrarianProfile, error) {
	var profile entity.LibrarianProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *librarianProfileRepository) FindAll(db *gorm.DB) ([]entity.LibrarianProfile, error) {
	var profiles []entity.LibrarianProfile
	err := db.Preload("User").Order("id ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *librarianProfileRepository) Update(db *gorm.DB, profile *entity.LibrarianProfile) error {
	return db.Save(profile).Error
}

func (r *librarianProfileRepository) DeleteByUserID(db *gorm.DB, userID uint) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&entity.LibrarianProfile{})
	return result.RowsAffected, result.Error
}
