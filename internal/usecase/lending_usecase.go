package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-lending/internal/converter"
	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"
	"library-lending/internal/domain/repository"
	"library-lending/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AvailabilityCounter maintains the cached circulation counters kept next to
// the catalog. *service.AvailabilitySyncService is the production implementation.
type AvailabilityCounter interface {
	OnBorrow(ctx context.Context) error
	OnReturn(ctx context.Context) error
	OnBookAdded(ctx context.Context) error
	OnBookRemoved(ctx context.Context) error
	GetCounts(ctx context.Context) (available int64, onLoan int64, ok bool, err error)
}

var (
	ErrBookNotFound        = errors.New("book not found")
	ErrReaderNotFound      = errors.New("reader not found")
	ErrBookAlreadyBorrowed = errors.New("book is already borrowed")
	ErrNoActiveLoan        = errors.New("book has no active loan")
	ErrPartialReturn       = errors.New("borrow record closed but book status update failed")
)

type LendingUsecase interface {
	BorrowBook(ctx context.Context, actorID uint, req *dto.BorrowBookRequest) (*dto.BorrowRecordResponse, error)
	ReturnBook(ctx context.Context, actorID uint, bookID uint) (*dto.ReturnBookResponse, error)
	GetBorrowingHistory(ctx context.Context, readerID uint) (*dto.BorrowHistoryResponse, error)
}

type lendingUsecase struct {
	db             *gorm.DB
	transactor     repository.Transactor
	log            *logrus.Logger
	bookRepo       repository.BookRepository
	readerRepo     repository.ReaderProfileRepository
	recordRepo     repository.BorrowRecordRepository
	auditService   service.AuditService
	syncService    AvailabilityCounter
	periodDays     int
	fineRatePerDay decimal.Decimal
}

func NewLendingUsecase(
	db *gorm.DB,
	transactor repository.Transactor,
	log *logrus.Logger,
	bookRepo repository.BookRepository,
	readerRepo repository.ReaderProfileRepository,
	recordRepo repository.BorrowRecordRepository,
	auditService service.AuditService,
	syncService AvailabilityCounter,
	periodDays int,
	fineRatePerDay decimal.Decimal,
) LendingUsecase {
	return &lendingUsecase{
		db:             db,
		transactor:     transactor,
		log:            log,
		bookRepo:       bookRepo,
		readerRepo:     readerRepo,
		recordRepo:     recordRepo,
		auditService:   auditService,
		syncService:    syncService,
		periodDays:     periodDays,
		fineRatePerDay: fineRatePerDay,
	}
}

// BorrowBook opens a loan: the book row is locked for the transaction, checked
// for availability, flipped to borrowed, and the borrow record written with
// due date = borrow date + loan period. All or nothing.
func (u *lendingUsecase) BorrowBook(ctx context.Context, actorID uint, req *dto.BorrowBookRequest) (*dto.BorrowRecordResponse, error) {
	var record *entity.BorrowRecord

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		reader, err := u.readerRepo.FindByID(tx, req.ReaderID)
		if err != nil {
			u.log.Warnf("Failed to find reader: %+v", err)
			return err
		}
		if reader == nil {
			return ErrReaderNotFound
		}

		book, err := u.bookRepo.FindByIDForUpdate(tx, req.BookID)
		if err != nil {
			u.log.Warnf("Failed to find book: %+v", err)
			return err
		}
		if book == nil {
			return ErrBookNotFound
		}
		if !book.IsAvailable() {
			return ErrBookAlreadyBorrowed
		}

		now := time.Now().UTC()
		borrowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		record = &entity.BorrowRecord{
			BookID:     book.ID,
			ReaderID:   reader.ID,
			BorrowDate: borrowDate,
			DueDate:    borrowDate.AddDate(0, 0, u.periodDays),
			FineAmount: decimal.Zero,
		}
		if err := u.recordRepo.Create(tx, record); err != nil {
			u.log.Warnf("Failed to create borrow record: %+v", err)
			return err
		}

		book.MarkBorrowed()
		rows, err := u.bookRepo.UpdateStatus(tx, book.ID, entity.BookStatusBorrowed)
		if err != nil {
			u.log.Warnf("Failed to update book status: %+v", err)
			return err
		}
		if rows == 0 {
			return ErrBookNotFound
		}

		if err := u.readerRepo.IncrementTotalBorrowed(tx, reader.ID); err != nil {
			u.log.Warnf("Failed to increment reader borrow count: %+v", err)
			return err
		}

		if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionBookBorrow, "borrow_record", fmt.Sprint(record.ID), record); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Counter drift here is tolerated; the next startup sync repairs it
	if err := u.syncService.OnBorrow(ctx); err != nil {
		u.log.Warnf("Failed to sync availability counters: %+v", err)
	}

	u.log.WithFields(logrus.Fields{
		"record_id": record.ID,
		"book_id":   record.BookID,
		"reader_id": record.ReaderID,
		"due_date":  record.DueDate.Format("2006-01-02"),
	}).Info("Book borrowed")

	return converter.BorrowRecordToResponse(record), nil
}

// ReturnBook closes the open loan for the book. The record close and the book
// status flip happen in one transaction; if the status flip fails after the
// record was closed the whole thing rolls back and the failure is surfaced
// as ErrPartialReturn so callers can tell it apart from a rejected request.
func (u *lendingUsecase) ReturnBook(ctx context.Context, actorID uint, bookID uint) (*dto.ReturnBookResponse, error) {
	var (
		record      *entity.BorrowRecord
		daysOverdue int
	)

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		book, err := u.bookRepo.FindByIDForUpdate(tx, bookID)
		if err != nil {
			u.log.Warnf("Failed to find book: %+v", err)
			return err
		}
		if book == nil {
			return ErrBookNotFound
		}

		record, err = u.recordRepo.FindOpenByBookID(tx, bookID)
		if err != nil {
			u.log.Warnf("Failed to find open borrow record: %+v", err)
			return err
		}
		if record == nil {
			return ErrNoActiveLoan
		}

		daysOverdue = record.Close(time.Now().UTC(), u.fineRatePerDay)
		if err := u.recordRepo.Update(tx, record); err != nil {
			u.log.Warnf("Failed to close borrow record: %+v", err)
			return err
		}

		rows, err := u.bookRepo.UpdateStatus(tx, bookID, entity.BookStatusAvailable)
		if err != nil {
			u.log.Warnf("Failed to update book status on return: %+v", err)
			return ErrPartialReturn
		}
		if rows == 0 {
			u.log.Warnf("Book %d vanished while closing its loan", bookID)
			return ErrPartialReturn
		}

		if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionBookReturn, "borrow_record", fmt.Sprint(record.ID), nil, record); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.syncService.OnReturn(ctx); err != nil {
		u.log.Warnf("Failed to sync availability counters: %+v", err)
	}

	u.log.WithFields(logrus.Fields{
		"record_id":    record.ID,
		"book_id":      record.BookID,
		"days_overdue": daysOverdue,
		"fine_amount":  record.FineAmount.String(),
	}).Info("Book returned")

	return &dto.ReturnBookResponse{
		RecordID:    record.ID,
		BookID:      record.BookID,
		ReturnDate:  *record.ReturnDate,
		DaysOverdue: daysOverdue,
		FineAmount:  record.FineAmount,
	}, nil
}

// GetBorrowingHistory lists every borrow record for the reader, open and
// closed, oldest first.
func (u *lendingUsecase) GetBorrowingHistory(ctx context.Context, readerID uint) (*dto.BorrowHistoryResponse, error) {
	db := u.db.WithContext(ctx)

	reader, err := u.readerRepo.FindByID(db, readerID)
	if err != nil {
		u.log.Warnf("Failed to find reader: %+v", err)
		return nil, err
	}
	if reader == nil {
		return nil, ErrReaderNotFound
	}

	records, err := u.recordRepo.FindByReaderID(db, readerID)
	if err != nil {
		u.log.Warnf("Failed to list borrow records: %+v", err)
		return nil, err
	}

	return &dto.BorrowHistoryResponse{
		Records: converter.BorrowRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
