package usecase

import (
	"context"
	"errors"
	"fmt"

	"library-lending/internal/converter"
	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"
	"library-lending/internal/domain/repository"
	"library-lending/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookOnLoan     = errors.New("book has an active loan")
	ErrBookHasHistory = errors.New("book has borrow history")
)

type CatalogUsecase interface {
	CreateBook(ctx context.Context, actorID uint, req *dto.CreateBookRequest) (*dto.BookResponse, error)
	GetBook(ctx context.Context, id uint) (*dto.BookResponse, error)
	ListBooks(ctx context.Context, limit, offset int) (*dto.BookListResponse, error)
	UpdateBook(ctx context.Context, actorID uint, id uint, req *dto.UpdateBookRequest) (*dto.BookResponse, error)
	DeleteBook(ctx context.Context, actorID uint, id uint) error
	SearchBooks(ctx context.Context, filter *entity.BookFilter) (*dto.BookListResponse, error)
}

type catalogUsecase struct {
	db           *gorm.DB
	transactor   repository.Transactor
	log          *logrus.Logger
	bookRepo     repository.BookRepository
	recordRepo   repository.BorrowRecordRepository
	auditService service.AuditService
	syncService  AvailabilityCounter
}

func NewCatalogUsecase(
	db *gorm.DB,
	transactor repository.Transactor,
	log *logrus.Logger,
	bookRepo repository.BookRepository,
	recordRepo repository.BorrowRecordRepository,
	auditService service.AuditService,
	syncService AvailabilityCounter,
) CatalogUsecase {
	return &catalogUsecase{
		db:           db,
		transactor:   transactor,
		log:          log,
		bookRepo:     bookRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
		syncService:  syncService,
	}
}

func (u *catalogUsecase) CreateBook(ctx context.Context, actorID uint, req *dto.CreateBookRequest) (*dto.BookResponse, error) {
	book := &entity.Book{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Status: entity.BookStatusAvailable,
	}

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.bookRepo.Create(tx, book); err != nil {
			u.log.Warnf("Failed to create book: %+v", err)
			return err
		}
		if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionBookCreate, "book", fmt.Sprint(book.ID), book); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.syncService.OnBookAdded(ctx); err != nil {
		u.log.Warnf("Failed to sync availability counters: %+v", err)
	}

	u.log.WithFields(logrus.Fields{
		"book_id": book.ID,
		"title":   book.Title,
	}).Info("Book created")

	return converter.BookToResponse(book), nil
}

func (u *catalogUsecase) GetBook(ctx context.Context, id uint) (*dto.BookResponse, error) {
	book, err := u.bookRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find book: %+v", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return converter.BookToResponse(book), nil
}

func (u *catalogUsecase) ListBooks(ctx context.Context, limit, offset int) (*dto.BookListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	books, total, err := u.bookRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list books: %+v", err)
		return nil, err
	}

	return &dto.BookListResponse{
		Books: converter.BooksToResponses(books),
		Total: int(total),
	}, nil
}

func (u *catalogUsecase) UpdateBook(ctx context.Context, actorID uint, id uint, req *dto.UpdateBookRequest) (*dto.BookResponse, error) {
	var book *entity.Book

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		book, err = u.bookRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find book: %+v", err)
			return err
		}
		if book == nil {
			return ErrBookNotFound
		}

		old := *book
		if req.Title != "" {
			book.Title = req.Title
		}
		if req.Author != "" {
			book.Author = req.Author
		}
		if req.Genre != "" {
			book.Genre = req.Genre
		}

		if err := u.bookRepo.Update(tx, book); err != nil {
			u.log.Warnf("Failed to update book: %+v", err)
			return err
		}

		if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionBookUpdate, "book", fmt.Sprint(book.ID), old, book); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.BookToResponse(book), nil
}

// DeleteBook removes a book from the catalog. Books with an open loan cannot
// be deleted; the loan has to be closed first.
func (u *catalogUsecase) DeleteBook(ctx context.Context, actorID uint, id uint) error {
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		book, err := u.bookRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find book: %+v", err)
			return err
		}
		if book == nil {
			return ErrBookNotFound
		}

		open, err := u.recordRepo.CountOpenByBookID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to count open loans: %+v", err)
			return err
		}
		if open > 0 || !book.IsAvailable() {
			return ErrBookOnLoan
		}

		rows, err := u.bookRepo.Delete(tx, id)
		if err != nil {
			// Closed borrow records keep referencing the book
			if isForeignKeyViolation(err) {
				return ErrBookHasHistory
			}
			u.log.Warnf("Failed to delete book: %+v", err)
			return err
		}
		if rows == 0 {
			return ErrBookNotFound
		}

		if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionBookDelete, "book", fmt.Sprint(id), book); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Only available books are deletable, so the available counter is the
	// one to decrement
	if err := u.syncService.OnBookRemoved(ctx); err != nil {
		u.log.Warnf("Failed to sync availability counters: %+v", err)
	}

	u.log.WithFields(logrus.Fields{"book_id": id}).Info("Book deleted")
	return nil
}

// SearchBooks filters by case-insensitive substring match on title or author,
// optionally narrowed to a status.
func (u *catalogUsecase) SearchBooks(ctx context.Context, filter *entity.BookFilter) (*dto.BookListResponse, error) {
	books, err := u.bookRepo.Search(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search books: %+v", err)
		return nil, err
	}

	return &dto.BookListResponse{
		Books: converter.BooksToResponses(books),
		Total: len(books),
	}, nil
}
