package repository

import (
	"errors"

	"library-lending/internal/domain/entity"
	domainRepo "library-lending/internal/domain/repository"

	"gorm.io/gorm"
)

type readerProfileRepository struct{}

func NewReaderProfileRepository() domainRepo.ReaderProfileRepository {
	return &readerProfileRepository{}
}

func (r *readerProfileRepository) Create(db *gorm.DB, profile *entity.ReaderProfile) error {
	return db.Create(profile).Error
}

func (r *readerProfileRepository) FindByID(db *gorm.DB, readerID uint) (*entity.ReaderProfile, error) {
	var profile entity.ReaderProfile
	err := db.Where("id = ?", readerID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *readerProfileRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.ReaderProfile, error) {
	var profile entity.ReaderProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *readerProfileRepository) FindAll(db *gorm.DB) ([]entity.ReaderProfile, error) {
	var profiles []entity.ReaderProfile
	err := db.Preload("User").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *readerProfileRepository) Update(db *gorm.DB, profile *entity.ReaderProfile) error {
	return db.Save(profile).Error
}

func (r *readerProfileRepository) IncrementTotalBorrowed(db *gorm.DB, readerID uint) error {
	return db.Model(&entity.ReaderProfile{}).
		Where("id = ?", readerID).
		UpdateColumn("total_borrowed", gorm.Expr("total_borrowed + 1")).Error
}

func (r *readerProfileRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.ReaderProfile{}).Count(&total).Error
	return total, err
}
