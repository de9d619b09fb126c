package repository

import (
	"errors"

	"library-lending/internal/domain/entity"
	domainRepo "library-lending/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookRepository struct{}

func NewBookRepository() domainRepo.BookRepository {
	return &bookRepository{}
}

func (r *bookRepository) Create(db *gorm.DB, book *entity.Book) error {
	return db.Create(book).Error
}

func (r *bookRepository) FindByID(db *gorm.DB, id uint) (*entity.Book, error) {
	var book entity.Book
	err := db.Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// FindByIDForUpdate locks the row so concurrent borrow/return attempts on the
// same book serialize instead of racing the status check.
func (r *bookRepository) FindByIDForUpdate(db *gorm.DB, id uint) (*entity.Book, error) {
	var book entity.Book
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Book, int64, error) {
	var books []entity.Book
	var total int64

	if err := db.Model(&entity.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Limit(limit).Offset(offset).Order("id ASC").Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (r *bookRepository) Search(db *gorm.DB, filter *entity.BookFilter) ([]entity.Book, error) {
	var books []entity.Book
	query := db.Model(&entity.Book{})

	if filter != nil {
		if filter.Keyword != "" {
			pattern := "%" + filter.Keyword + "%"
			query = query.Where("title ILIKE ? OR author ILIKE ?", pattern, pattern)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	err := query.Order("id ASC").Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Update(db *gorm.DB, book *entity.Book) error {
	return db.Save(book).Error
}

func (r *bookRepository) UpdateStatus(db *gorm.DB, id uint, status entity.BookStatus) (int64, error) {
	result := db.Model(&entity.Book{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *bookRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Book{})
	return result.RowsAffected, result.Error
}

func (r *bookRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Book{}).Count(&total).Error
	return total, err
}

func (r *bookRepository) CountByStatus(db *gorm.DB, status entity.BookStatus) (int64, error) {
	var total int64
	err := db.Model(&entity.Book{}).Where("status = ?", status).Count(&total).Error
	return total, err
}
