package repository

import (
	"library-lending/internal/domain/entity"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(db *gorm.DB, book *entity.Book) error
	FindByID(db *gorm.DB, id uint) (*entity.Book, error)
	// FindByIDForUpdate locks the book row for the duration of the caller's
	// transaction so that check-then-act on status cannot interleave.
	FindByIDForUpdate(db *gorm.DB, id uint) (*entity.Book, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Book, int64, error)
	Search(db *gorm.DB, filter *entity.BookFilter) ([]entity.Book, error)
	Update(db *gorm.DB, book *entity.Book) error
	UpdateStatus(db *gorm.DB, id uint, status entity.BookStatus) (int64, error)
	Delete(db *gorm.DB, id uint) (int64, error)
	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status entity.BookStatus) (int64, error)
}
