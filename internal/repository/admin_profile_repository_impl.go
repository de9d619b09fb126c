package repository

import (
	"errors"

	"library-lending/internal/domain/entity"
	domainRepo "library-lending/internal/domain/repository"

	"gorm.io/gorm"
)

type adminProfileRepository struct{}

func NewAdminProfileRepository() domainRepo.AdminProfileRepository {
	return &adminProfileRepository{}
}

func (r *adminProfileRepository) Create(db *gorm.DB, profile *entity.AdminProfile) error {
	return db.Create(profile).Error
}

func (r *adminProfileRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.AdminProfile, error) {
	var profile entity.AdminProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *adminProfileRepository) Update(db *gorm.DB, profile *entity.AdminProfile) error {
	return db.Save(profile).Error
}

func (r *adminProfileRepository) DeleteByUserID(db *gorm.DB, userID uint) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&entity.AdminProfile{})
	return result.RowsAffected, result.Error
}
