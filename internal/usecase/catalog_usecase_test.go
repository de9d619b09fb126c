package usecase

import (
	"context"
	"testing"

	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type catalogMocks struct {
	bookRepo     *MockBookRepository
	recordRepo   *MockBorrowRecordRepository
	auditService *MockAuditService
	counter      *MockAvailabilityCounter
}

func newCatalogUsecaseForTest(t *testing.T) (CatalogUsecase, *catalogMocks) {
	m := &catalogMocks{
		bookRepo:     new(MockBookRepository),
		recordRepo:   new(MockBorrowRecordRepository),
		auditService: new(MockAuditService),
		counter:      new(MockAvailabilityCounter),
	}
	uc := NewCatalogUsecase(
		newTestDB(t),
		&fakeTransactor{},
		newTestLogger(),
		m.bookRepo,
		m.recordRepo,
		m.auditService,
		m.counter,
	)
	return uc, m
}

func TestCatalogUsecase_CreateBook(t *testing.T) {
	uc, m := newCatalogUsecaseForTest(t)

	m.bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Book")).
		Run(func(args mock.Arguments) {
			book := args.Get(1).(*entity.Book)
			assert.Equal(t, entity.BookStatusAvailable, book.Status)
			book.ID = 1
		}).
		Return(nil)
	m.auditService.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionBookCreate, "book", "1", mock.Anything).Return(nil)
	m.counter.On("OnBookAdded", mock.Anything).Return(nil)

	resp, err := uc.CreateBook(context.Background(), 1, &dto.CreateBookRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
		Genre:  "Sci-Fi",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, string(entity.BookStatusAvailable), resp.Status)
	m.counter.AssertExpectations(t)
}

func TestCatalogUsecase_DeleteBook(t *testing.T) {
	t.Run("book on loan cannot be deleted", func(t *testing.T) {
		uc, m := newCatalogUsecaseForTest(t)

		m.bookRepo.On("FindByIDForUpdate", mock.Anything, uint(1)).
			Return(&entity.Book{ID: 1, Status: entity.BookStatusBorrowed}, nil)
		m.recordRepo.On("CountOpenByBookID", mock.Anything, uint(1)).Return(int64(1), nil)

		err := uc.DeleteBook(context.Background(), 1, 1)

		assert.ErrorIs(t, err, ErrBookOnLoan)
		m.bookRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("available book is deleted and counters follow", func(t *testing.T) {
		uc, m := newCatalogUsecaseForTest(t)

		m.bookRepo.On("FindByIDForUpdate", mock.Anything, uint(1)).
			Return(&entity.Book{ID: 1, Status: entity.BookStatusAvailable}, nil)
		m.recordRepo.On("CountOpenByBookID", mock.Anything, uint(1)).Return(int64(0), nil)
		m.bookRepo.On("Delete", mock.Anything, uint(1)).Return(int64(1), nil)
		m.auditService.On("LogDelete", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionBookDelete, "book", "1", mock.Anything).Return(nil)
		m.counter.On("OnBookRemoved", mock.Anything).Return(nil)

		err := uc.DeleteBook(context.Background(), 1, 1)

		assert.NoError(t, err)
		m.counter.AssertExpectations(t)
	})

	t.Run("unknown book", func(t *testing.T) {
		uc, m := newCatalogUsecaseForTest(t)

		m.bookRepo.On("FindByIDForUpdate", mock.Anything, uint(404)).Return(nil, nil)

		err := uc.DeleteBook(context.Background(), 1, 404)

		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestCatalogUsecase_UpdateBook(t *testing.T) {
	t.Run("only provided fields change", func(t *testing.T) {
		uc, m := newCatalogUsecaseForTest(t)

		m.bookRepo.On("FindByIDForUpdate", mock.Anything, uint(1)).
			Return(&entity.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi"}, nil)
		m.bookRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Book")).Return(nil)
		m.auditService.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionBookUpdate, "book", "1", mock.Anything, mock.Anything).Return(nil)

		resp, err := uc.UpdateBook(context.Background(), 1, 1, &dto.UpdateBookRequest{Genre: "Science Fiction"})

		assert.NoError(t, err)
		assert.Equal(t, "Dune", resp.Title)
		assert.Equal(t, "Frank Herbert", resp.Author)
		assert.Equal(t, "Science Fiction", resp.Genre)
	})
}

func TestCatalogUsecase_SearchBooks(t *testing.T) {
	uc, m := newCatalogUsecaseForTest(t)

	filter := &entity.BookFilter{Keyword: "dune", Status: entity.BookStatusAvailable}
	m.bookRepo.On("Search", mock.Anything, filter).
		Return([]entity.Book{{ID: 1, Title: "Dune", Status: entity.BookStatusAvailable}}, nil)

	resp, err := uc.SearchBooks(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "Dune", resp.Books[0].Title)
}

func TestCatalogUsecase_ListBooks(t *testing.T) {
	uc, m := newCatalogUsecaseForTest(t)

	// Out-of-range paging collapses to the defaults
	m.bookRepo.On("FindAll", mock.Anything, 20, 0).
		Return([]entity.Book{{ID: 1, Title: "Dune"}}, int64(1), nil)

	resp, err := uc.ListBooks(context.Background(), 500, -3)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	m.bookRepo.AssertExpectations(t)
}
