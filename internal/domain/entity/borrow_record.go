package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BorrowRecord represents one borrow/return transaction. ReturnDate is nil
// while the loan is open; once closed the record is never mutated again.
type BorrowRecord struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"record_id"`
	BookID     uint            `gorm:"not null;index" json:"book_id"`
	ReaderID   uint            `gorm:"not null;index" json:"reader_id"`
	BorrowDate time.Time       `gorm:"type:date;not null" json:"borrow_date"`
	DueDate    time.Time       `gorm:"type:date;not null" json:"due_date"`
	ReturnDate *time.Time      `gorm:"type:date" json:"return_date,omitempty"`
	FineAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"fine_amount"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Book   Book          `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Reader ReaderProfile `gorm:"foreignKey:ReaderID" json:"reader,omitempty"`
}

func (BorrowRecord) TableName() string {
	return "borrow_records"
}

// IsOpen reports whether the loan has not been returned yet
func (r *BorrowRecord) IsOpen() bool {
	return r.ReturnDate == nil
}

// DaysOverdue returns how many whole days past the due date the given return
// moment falls, never negative.
func (r *BorrowRecord) DaysOverdue(returnDate time.Time) int {
	days := int(truncateToDay(returnDate).Sub(truncateToDay(r.DueDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Close stamps the return date and freezes the fine:
// fine = days_overdue * ratePerDay. Returns the overdue day count.
func (r *BorrowRecord) Close(returnDate time.Time, ratePerDay decimal.Decimal) int {
	days := r.DaysOverdue(returnDate)
	day := truncateToDay(returnDate)
	r.ReturnDate = &day
	r.FineAmount = ratePerDay.Mul(decimal.NewFromInt(int64(days)))
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
