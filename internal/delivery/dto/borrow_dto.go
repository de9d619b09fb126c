package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type BorrowBookRequest struct {
	ReaderID uint `json:"reader_id" validate:"required,min=1"`
	BookID   uint `json:"book_id" validate:"required,min=1"`
}

// Response DTOs

type BorrowRecordResponse struct {
	RecordID   uint            `json:"record_id"`
	BookID     uint            `json:"book_id"`
	ReaderID   uint            `json:"reader_id"`
	BorrowDate time.Time       `json:"borrow_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	FineAmount decimal.Decimal `json:"fine_amount"`
	Book       *BookResponse   `json:"book,omitempty"`
}

type ReturnBookResponse struct {
	RecordID    uint            `json:"record_id"`
	BookID      uint            `json:"book_id"`
	ReturnDate  time.Time       `json:"return_date"`
	DaysOverdue int             `json:"days_overdue"`
	FineAmount  decimal.Decimal `json:"fine_amount"`
}

type BorrowHistoryResponse struct {
	Records []BorrowRecordResponse `json:"records"`
	Total   int                    `json:"total"`
}
