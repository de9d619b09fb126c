package usecase

import (
	"context"

	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"
	"library-lending/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error)
}

type reportUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	bookRepo    repository.BookRepository
	readerRepo  repository.ReaderProfileRepository
	syncService AvailabilityCounter
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookRepo repository.BookRepository,
	readerRepo repository.ReaderProfileRepository,
	syncService AvailabilityCounter,
) ReportUsecase {
	return &reportUsecase{
		db:          db,
		log:         log,
		bookRepo:    bookRepo,
		readerRepo:  readerRepo,
		syncService: syncService,
	}
}

// GetStatistics reports catalog and membership totals. Circulation counts are
// served from the Redis counters when they are live, falling back to the
// database otherwise.
func (u *reportUsecase) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	db := u.db.WithContext(ctx)

	totalBooks, err := u.bookRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count books: %+v", err)
		return nil, err
	}

	totalReaders, err := u.readerRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count readers: %+v", err)
		return nil, err
	}

	available, onLoan, ok, err := u.syncService.GetCounts(ctx)
	if err != nil {
		u.log.Warnf("Failed to read availability counters: %+v", err)
	}
	if !ok || err != nil {
		available, err = u.bookRepo.CountByStatus(db, entity.BookStatusAvailable)
		if err != nil {
			u.log.Warnf("Failed to count available books: %+v", err)
			return nil, err
		}
		onLoan, err = u.bookRepo.CountByStatus(db, entity.BookStatusBorrowed)
		if err != nil {
			u.log.Warnf("Failed to count borrowed books: %+v", err)
			return nil, err
		}
	}

	return &dto.StatisticsResponse{
		TotalBooks:     totalBooks,
		TotalReaders:   totalReaders,
		BooksAvailable: available,
		BooksOnLoan:    onLoan,
	}, nil
}
