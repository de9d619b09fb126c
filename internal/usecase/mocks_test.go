package usecase

import (
	"context"
	"testing"

	"library-lending/internal/domain/entity"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormtests "gorm.io/gorm/utils/tests"
)

// newTestDB returns a gorm handle backed by the dummy dialector. Repositories
// are mocked in these tests, so nothing is ever executed against it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormtests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

// fakeTransactor runs the callback directly, without a real transaction.
type fakeTransactor struct {
	db *gorm.DB
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(f.db)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	args := m.Called(db, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error) {
	args := m.Called(ctx, db, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

type MockReaderProfileRepository struct {
	mock.Mock
}

func (m *MockReaderProfileRepository) Create(db *gorm.DB, profile *entity.ReaderProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockReaderProfileRepository) FindByID(db *gorm.DB, readerID uint) (*entity.ReaderProfile, error) {
	args := m.Called(db, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReaderProfile), args.Error(1)
}

func (m *MockReaderProfileRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.ReaderProfile, error) {
	args := m.Called(db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReaderProfile), args.Error(1)
}

func (m *MockReaderProfileRepository) FindAll(db *gorm.DB) ([]entity.ReaderProfile, error) {
	args := m.Called(db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ReaderProfile), args.Error(1)
}

func (m *MockReaderProfileRepository) Update(db *gorm.DB, profile *entity.ReaderProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockReaderProfileRepository) IncrementTotalBorrowed(db *gorm.DB, readerID uint) error {
	args := m.Called(db, readerID)
	return args.Error(0)
}

func (m *MockReaderProfileRepository) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

type MockLibrarianProfileRepository struct {
	mock.Mock
}

func (m *MockLibrarianProfileRepository) Create(db *gorm.DB, profile *entity.LibrarianProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockLibrarianProfileRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.LibrarianProfile, error) {
	args := m.Called(db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LibrarianProfile), args.Error(1)
}

func (m *MockLibrarianProfileRepository) FindAll(db *gorm.DB) ([]entity.LibrarianProfile, error) {
	args := m.Called(db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LibrarianProfile), args.Error(1)
}

func (m *MockLibrarianProfileRepository) Update(db *gorm.DB, profile *entity.LibrarianProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockLibrarianProfileRepository) DeleteByUserID(db *gorm.DB, userID uint) (int64, error) {
	args := m.Called(db, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAdminProfileRepository struct {
	mock.Mock
}

func (m *MockAdminProfileRepository) Create(db *gorm.DB, profile *entity.AdminProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockAdminProfileRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.AdminProfile, error) {
	args := m.Called(db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AdminProfile), args.Error(1)
}

func (m *MockAdminProfileRepository) Update(db *gorm.DB, profile *entity.AdminProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockAdminProfileRepository) DeleteByUserID(db *gorm.DB, userID uint) (int64, error) {
	args := m.Called(db, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(db *gorm.DB, book *entity.Book) error {
	args := m.Called(db, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(db *gorm.DB, id uint) (*entity.Book, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookRepository) FindByIDForUpdate(db *gorm.DB, id uint) (*entity.Book, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Book, int64, error) {
	args := m.Called(db, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) Search(db *gorm.DB, filter *entity.BookFilter) ([]entity.Book, error) {
	args := m.Called(db, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Book), args.Error(1)
}

func (m *MockBookRepository) Update(db *gorm.DB, book *entity.Book) error {
	args := m.Called(db, book)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateStatus(db *gorm.DB, id uint, status entity.BookStatus) (int64, error) {
	args := m.Called(db, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) CountByStatus(db *gorm.DB, status entity.BookStatus) (int64, error) {
	args := m.Called(db, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockBorrowRecordRepository struct {
	mock.Mock
}

func (m *MockBorrowRecordRepository) Create(db *gorm.DB, record *entity.BorrowRecord) error {
	args := m.Called(db, record)
	return args.Error(0)
}

func (m *MockBorrowRecordRepository) FindByID(db *gorm.DB, id uint) (*entity.BorrowRecord, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRecordRepository) FindOpenByBookID(db *gorm.DB, bookID uint) (*entity.BorrowRecord, error) {
	args := m.Called(db, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRecordRepository) FindByReaderID(db *gorm.DB, readerID uint) ([]entity.BorrowRecord, error) {
	args := m.Called(db, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BorrowRecord), args.Error(1)
}

func (m *MockBorrowRecordRepository) Update(db *gorm.DB, record *entity.BorrowRecord) error {
	args := m.Called(db, record)
	return args.Error(0)
}

func (m *MockBorrowRecordRepository) CountOpenByBookID(db *gorm.DB, bookID uint) (int64, error) {
	args := m.Called(db, bookID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID string, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID string, oldValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, oldValue)
	return args.Error(0)
}

type MockAvailabilityCounter struct {
	mock.Mock
}

func (m *MockAvailabilityCounter) OnBorrow(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAvailabilityCounter) OnReturn(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAvailabilityCounter) OnBookAdded(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAvailabilityCounter) OnBookRemoved(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAvailabilityCounter) GetCounts(ctx context.Context) (int64, int64, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Bool(2), args.Error(3)
}
