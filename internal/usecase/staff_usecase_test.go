package usecase

import (
	"context"
	"testing"

	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staffMocks struct {
	userRepo      *MockUserRepository
	roleRepo      *MockRoleRepository
	librarianRepo *MockLibrarianProfileRepository
	adminRepo     *MockAdminProfileRepository
	auditService  *MockAuditService
}

func newStaffUsecaseForTest(t *testing.T) (StaffUsecase, *staffMocks) {
	m := &staffMocks{
		userRepo:      new(MockUserRepository),
		roleRepo:      new(MockRoleRepository),
		librarianRepo: new(MockLibrarianProfileRepository),
		adminRepo:     new(MockAdminProfileRepository),
		auditService:  new(MockAuditService),
	}
	uc := NewStaffUsecase(
		newTestDB(t),
		&fakeTransactor{},
		newTestLogger(),
		m.userRepo,
		m.roleRepo,
		m.librarianRepo,
		m.adminRepo,
		m.auditService,
	)
	return uc, m
}

func TestStaffUsecase_CreateStaff(t *testing.T) {
	t.Run("librarian gets user and librarian profile", func(t *testing.T) {
		uc, m := newStaffUsecaseForTest(t)

		m.roleRepo.On("FindByName", mock.Anything, mock.Anything, entity.RoleLibrarian).
			Return(&entity.Role{ID: entity.RoleIDLibrarian, RoleName: entity.RoleLibrarian}, nil)
		m.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.User).ID = 3
			}).
			Return(nil)
		m.librarianRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.LibrarianProfile")).
			Run(func(args mock.Arguments) {
				profile := args.Get(1).(*entity.LibrarianProfile)
				assert.Equal(t, uint(3), profile.UserID)
				assert.Equal(t, "ST-010", profile.StaffID)
				profile.ID = 7
			}).
			Return(nil)
		m.auditService.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionStaffCreate, "user", "3", "bob").Return(nil)

		resp, err := uc.CreateStaff(context.Background(), 1, &dto.CreateStaffRequest{
			Username: "bob",
			Password: "secret",
			Name:     "Bob",
			Email:    "bob@example.com",
			Role:     entity.RoleLibrarian,
			StaffID:  "ST-010",
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.RoleLibrarian, resp.Role)
		require.NotNil(t, resp.LibrarianProfile)
		assert.Equal(t, uint(7), resp.LibrarianProfile.LibrarianID)
		assert.Nil(t, resp.AdminProfile)
		m.adminRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin gets the full extension chain", func(t *testing.T) {
		uc, m := newStaffUsecaseForTest(t)

		m.roleRepo.On("FindByName", mock.Anything, mock.Anything, entity.RoleAdmin).
			Return(&entity.Role{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin}, nil)
		m.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.User).ID = 2
			}).
			Return(nil)
		m.librarianRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.LibrarianProfile")).Return(nil)
		m.adminRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.AdminProfile")).
			Run(func(args mock.Arguments) {
				profile := args.Get(1).(*entity.AdminProfile)
				assert.Equal(t, uint(2), profile.UserID)
				assert.Equal(t, "full", profile.PrivilegeLevel)
			}).
			Return(nil)
		m.auditService.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionStaffCreate, "user", "2", "boss").Return(nil)

		resp, err := uc.CreateStaff(context.Background(), 1, &dto.CreateStaffRequest{
			Username:       "boss",
			Password:       "secret",
			Name:           "Boss",
			Email:          "boss@example.com",
			Role:           entity.RoleAdmin,
			StaffID:        "ST-001",
			PrivilegeLevel: "full",
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.Role)
		require.NotNil(t, resp.LibrarianProfile)
		require.NotNil(t, resp.AdminProfile)
	})
}

func TestStaffUsecase_DeleteStaff(t *testing.T) {
	t.Run("admin deletion runs the chain in dependency order", func(t *testing.T) {
		uc, m := newStaffUsecaseForTest(t)

		var order []string
		m.userRepo.On("FindByID", mock.Anything, uint(2)).
			Return(&entity.User{ID: 2, RoleID: entity.RoleIDAdmin, Username: "boss"}, nil)
		m.librarianRepo.On("FindByUserID", mock.Anything, uint(2)).
			Return(&entity.LibrarianProfile{ID: 1, UserID: 2}, nil)
		m.adminRepo.On("FindByUserID", mock.Anything, uint(2)).
			Return(&entity.AdminProfile{ID: 1, UserID: 2}, nil)
		m.adminRepo.On("DeleteByUserID", mock.Anything, uint(2)).
			Run(func(mock.Arguments) { order = append(order, "admin") }).
			Return(int64(1), nil)
		m.librarianRepo.On("DeleteByUserID", mock.Anything, uint(2)).
			Run(func(mock.Arguments) { order = append(order, "librarian") }).
			Return(int64(1), nil)
		m.userRepo.On("Delete", mock.Anything, uint(2)).
			Run(func(mock.Arguments) { order = append(order, "user") }).
			Return(int64(1), nil)
		m.auditService.On("LogDelete", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionStaffDelete, "user", "2", "boss").Return(nil)

		err := uc.DeleteStaff(context.Background(), 1, 2)

		assert.NoError(t, err)
		assert.Equal(t, []string{"admin", "librarian", "user"}, order)
	})

	t.Run("reader accounts are not staff", func(t *testing.T) {
		uc, m := newStaffUsecaseForTest(t)

		m.userRepo.On("FindByID", mock.Anything, uint(9)).
			Return(&entity.User{ID: 9, RoleID: entity.RoleIDReader}, nil)

		err := uc.DeleteStaff(context.Background(), 1, 9)

		assert.ErrorIs(t, err, ErrStaffNotFound)
		m.userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("profile delete failure stops the chain", func(t *testing.T) {
		uc, m := newStaffUsecaseForTest(t)

		m.userRepo.On("FindByID", mock.Anything, uint(3)).
			Return(&entity.User{ID: 3, RoleID: entity.RoleIDLibrarian, Username: "bob"}, nil)
		m.librarianRepo.On("FindByUserID", mock.Anything, uint(3)).
			Return(&entity.LibrarianProfile{ID: 7, UserID: 3}, nil)
		m.librarianRepo.On("DeleteByUserID", mock.Anything, uint(3)).
			Return(int64(0), assert.AnError)

		err := uc.DeleteStaff(context.Background(), 1, 3)

		assert.Error(t, err)
		m.userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestStaffUsecase_GetStaff(t *testing.T) {
	t.Run("librarian without profile is inconsistent", func(t *testing.T) {
		uc, m := newStaffUsecaseForTest(t)

		m.userRepo.On("FindByID", mock.Anything, uint(3)).
			Return(&entity.User{ID: 3, RoleID: entity.RoleIDLibrarian}, nil)
		m.librarianRepo.On("FindByUserID", mock.Anything, uint(3)).Return(nil, nil)

		_, err := uc.GetStaff(context.Background(), 3)

		assert.ErrorIs(t, err, ErrInconsistentRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc, m := newStaffUsecaseForTest(t)

		m.userRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, nil)

		_, err := uc.GetStaff(context.Background(), 404)

		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}
