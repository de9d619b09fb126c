package entity

import "time"

// BookStatus represents the lending status of a book
type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusBorrowed  BookStatus = "borrowed"
)

// Book represents a single lendable copy. Status is the only mutable field
// governing lending eligibility: a book is borrowed iff exactly one open
// borrow record references it.
type Book struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string     `gorm:"type:varchar(255);not null;index" json:"title"`
	Author    string     `gorm:"type:varchar(255);index" json:"author"`
	Genre     string     `gorm:"type:varchar(100)" json:"genre,omitempty"`
	Status    BookStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	BorrowRecords []BorrowRecord `gorm:"foreignKey:BookID" json:"borrow_records,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

// IsAvailable checks if the book can be lent out
func (b *Book) IsAvailable() bool {
	return b.Status == BookStatusAvailable
}

// MarkBorrowed transitions the book to borrowed status
func (b *Book) MarkBorrowed() {
	b.Status = BookStatusBorrowed
}

// MarkAvailable transitions the book back to available status
func (b *Book) MarkAvailable() {
	b.Status = BookStatusAvailable
}
