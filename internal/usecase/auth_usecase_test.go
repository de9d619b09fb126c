package usecase

import (
	"context"
	"testing"
	"time"

	"library-lending/config"
	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"
	"library-lending/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authMocks struct {
	userRepo      *MockUserRepository
	roleRepo      *MockRoleRepository
	readerRepo    *MockReaderProfileRepository
	librarianRepo *MockLibrarianProfileRepository
	adminRepo     *MockAdminProfileRepository
	auditService  *MockAuditService
}

func newAuthUsecaseForTest(t *testing.T) (AuthUsecase, *authMocks) {
	m := &authMocks{
		userRepo:      new(MockUserRepository),
		roleRepo:      new(MockRoleRepository),
		readerRepo:    new(MockReaderProfileRepository),
		librarianRepo: new(MockLibrarianProfileRepository),
		adminRepo:     new(MockAdminProfileRepository),
		auditService:  new(MockAuditService),
	}
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	uc := NewAuthUsecase(
		newTestDB(t),
		&fakeTransactor{},
		newTestLogger(),
		m.userRepo,
		m.roleRepo,
		m.readerRepo,
		m.librarianRepo,
		m.adminRepo,
		m.auditService,
		jwtService,
		nil,
	)
	return uc, m
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthUsecase_Authenticate(t *testing.T) {
	t.Run("reader gets reader profile payload", func(t *testing.T) {
		uc, m := newAuthUsecaseForTest(t)

		user := &entity.User{
			ID:       9,
			RoleID:   entity.RoleIDReader,
			Username: "alice",
			Password: hashPassword(t, "secret"),
			Name:     "Alice",
		}
		m.userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		m.readerRepo.On("FindByUserID", mock.Anything, uint(9)).
			Return(&entity.ReaderProfile{ID: 5, UserID: 9, TotalBorrowed: 3}, nil)

		resp, err := uc.Authenticate(context.Background(), "alice", "secret")

		assert.NoError(t, err)
		assert.Equal(t, entity.RoleReader, resp.Role)
		require.NotNil(t, resp.ReaderProfile)
		assert.Equal(t, uint(5), resp.ReaderProfile.ReaderID)
		assert.Equal(t, 3, resp.ReaderProfile.TotalBorrowed)
		assert.Nil(t, resp.LibrarianProfile)
		assert.Nil(t, resp.AdminProfile)
	})

	t.Run("admin gets librarian and admin payloads", func(t *testing.T) {
		uc, m := newAuthUsecaseForTest(t)

		user := &entity.User{
			ID:       2,
			RoleID:   entity.RoleIDAdmin,
			Username: "boss",
			Password: hashPassword(t, "secret"),
		}
		m.userRepo.On("FindByUsername", mock.Anything, "boss").Return(user, nil)
		m.librarianRepo.On("FindByUserID", mock.Anything, uint(2)).
			Return(&entity.LibrarianProfile{ID: 1, UserID: 2, StaffID: "ST-001"}, nil)
		m.adminRepo.On("FindByUserID", mock.Anything, uint(2)).
			Return(&entity.AdminProfile{ID: 1, UserID: 2, PrivilegeLevel: "full"}, nil)

		resp, err := uc.Authenticate(context.Background(), "boss", "secret")

		assert.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.Role)
		require.NotNil(t, resp.LibrarianProfile)
		assert.Equal(t, "ST-001", resp.LibrarianProfile.StaffID)
		require.NotNil(t, resp.AdminProfile)
		assert.Equal(t, "full", resp.AdminProfile.PrivilegeLevel)
	})

	t.Run("admin with missing admin profile is inconsistent", func(t *testing.T) {
		uc, m := newAuthUsecaseForTest(t)

		user := &entity.User{
			ID:       2,
			RoleID:   entity.RoleIDAdmin,
			Username: "boss",
			Password: hashPassword(t, "secret"),
		}
		m.userRepo.On("FindByUsername", mock.Anything, "boss").Return(user, nil)
		m.librarianRepo.On("FindByUserID", mock.Anything, uint(2)).
			Return(&entity.LibrarianProfile{ID: 1, UserID: 2}, nil)
		m.adminRepo.On("FindByUserID", mock.Anything, uint(2)).Return(nil, nil)

		_, err := uc.Authenticate(context.Background(), "boss", "secret")

		assert.ErrorIs(t, err, ErrInconsistentRole)
	})

	t.Run("unknown username", func(t *testing.T) {
		uc, m := newAuthUsecaseForTest(t)

		m.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

		_, err := uc.Authenticate(context.Background(), "ghost", "secret")

		assert.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, m := newAuthUsecaseForTest(t)

		user := &entity.User{
			ID:       9,
			RoleID:   entity.RoleIDReader,
			Username: "alice",
			Password: hashPassword(t, "secret"),
		}
		m.userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		_, err := uc.Authenticate(context.Background(), "alice", "wrong")

		assert.ErrorIs(t, err, ErrBadCredentials)
		m.readerRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_RegisterReader(t *testing.T) {
	req := &dto.RegisterReaderRequest{
		Username: "alice",
		Password: "secret",
		Name:     "Alice",
		Email:    "alice@example.com",
	}

	t.Run("creates user and reader profile together", func(t *testing.T) {
		uc, m := newAuthUsecaseForTest(t)

		m.roleRepo.On("FindByName", mock.Anything, mock.Anything, entity.RoleReader).
			Return(&entity.Role{ID: entity.RoleIDReader, RoleName: entity.RoleReader}, nil)
		m.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.User).ID = 9
			}).
			Return(nil)
		m.readerRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ReaderProfile")).
			Run(func(args mock.Arguments) {
				profile := args.Get(1).(*entity.ReaderProfile)
				assert.Equal(t, uint(9), profile.UserID)
				profile.ID = 5
			}).
			Return(nil)
		m.auditService.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionReaderRegister, "reader_profile", "5", "alice").Return(nil)

		resp, err := uc.RegisterReader(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, entity.RoleReader, resp.Role)
		require.NotNil(t, resp.ReaderProfile)
		assert.Equal(t, uint(5), resp.ReaderProfile.ReaderID)
	})

	t.Run("duplicate identity maps unique violations", func(t *testing.T) {
		uc, m := newAuthUsecaseForTest(t)

		m.roleRepo.On("FindByName", mock.Anything, mock.Anything, entity.RoleReader).
			Return(&entity.Role{ID: entity.RoleIDReader, RoleName: entity.RoleReader}, nil)
		m.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := uc.RegisterReader(context.Background(), req)

		assert.ErrorIs(t, err, ErrDuplicateIdentity)
		m.readerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_RefreshToken(t *testing.T) {
	t.Run("garbage token is rejected before any lookup", func(t *testing.T) {
		uc, _ := newAuthUsecaseForTest(t)

		_, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "not-a-jwt"})

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
