package repository

import (
	"errors"

	"library-lending/internal/domain/entity"
	domainRepo "library-lending/internal/domain/repository"

	"gorm.io/gorm"
)

type borrowRecordRepository struct{}

func NewBorrowRecordRepository() domainRepo.BorrowRecordRepository {
	return &borrowRecordRepository{}
}

func (r *borrowRecordRepository) Create(db *gorm.DB, record *entity.BorrowRecord) error {
	return db.Create(record).Error
}

func (r *borrowRecordRepository) FindByID(db *gorm.DB, id uint) (*entity.BorrowRecord, error) {
	var record entity.BorrowRecord
	err := db.Preload("Book").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *borrowRecordRepository) FindOpenByBookID(db *gorm.DB, bookID uint) (*entity.BorrowRecord, error) {
	var record entity.BorrowRecord
	err := db.Where("book_id = ? AND return_date IS NULL", bookID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByReaderID returns all records for the reader, open and closed, in
// insertion order.
func (r *borrowRecordRepository) FindByReaderID(db *gorm.DB, readerID uint) ([]entity.BorrowRecord, error) {
	var records []entity.BorrowRecord
	err := db.Preload("Book").
		Where("reader_id = ?", readerID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *borrowRecordRepository) Update(db *gorm.DB, record *entity.BorrowRecord) error {
	return db.Omit("Book", "Reader").Save(record).Error
}

func (r *borrowRecordRepository) CountOpenByBookID(db *gorm.DB, bookID uint) (int64, error) {
	var total int64
	err := db.Model(&entity.BorrowRecord{}).
		Where("book_id = ? AND return_date IS NULL", bookID).
		Count(&total).Error
	return total, err
}
