package repository

import (
	"library-lending/internal/domain/entity"

	"gorm.io/gorm"
)

type BorrowRecordRepository interface {
	Create(db *gorm.DB, record *entity.BorrowRecord) error
	FindByID(db *gorm.DB, id uint) (*entity.BorrowRecord, error)
	// FindOpenByBookID returns the unique record with return_date IS NULL for
	// the book, or nil when the book has no active loan.
	FindOpenByBookID(db *gorm.DB, bookID uint) (*entity.BorrowRecord, error)
	FindByReaderID(db *gorm.DB, readerID uint) ([]entity.BorrowRecord, error)
	Update(db *gorm.DB, record *entity.BorrowRecord) error
	CountOpenByBookID(db *gorm.DB, bookID uint) (int64, error)
}
