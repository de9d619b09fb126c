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

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrStaffNotFound = errors.New("staff member not found")

type StaffUsecase interface {
	CreateStaff(ctx context.Context, actorID uint, req *dto.CreateStaffRequest) (*dto.UserResponse, error)
	GetStaff(ctx context.Context, userID uint) (*dto.UserResponse, error)
	ListStaff(ctx context.Context) (*dto.StaffListResponse, error)
	UpdateStaff(ctx context.Context, actorID uint, userID uint, req *dto.UpdateStaffRequest) (*dto.UserResponse, error)
	DeleteStaff(ctx context.Context, actorID uint, userID uint) error
}

type staffUsecase struct {
	db            *gorm.DB
	transactor    repository.Transactor
	log           *logrus.Logger
	userRepo      repository.UserRepository
	roleRepo      repository.RoleRepository
	librarianRepo repository.LibrarianProfileRepository
	adminRepo     repository.AdminProfileRepository
	auditService  service.AuditService
}

func NewStaffUsecase(
	db *gorm.DB,
	transactor repository.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	librarianRepo repository.LibrarianProfileRepository,
	adminRepo repository.AdminProfileRepository,
	auditService service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		db:            db,
		transactor:    transactor,
		log:           log,
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		librarianRepo: librarianRepo,
		adminRepo:     adminRepo,
		auditService:  auditService,
	}
}

// CreateStaff builds the full extension chain for the requested role in one
// transaction: user + librarian profile, plus the admin profile when the new
// account is an admin.
func (u *staffUsecase) CreateStaff(ctx context.Context, actorID uint, req *dto.CreateStaffRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Phone:    req.Phone,
	}

	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		role, err := u.roleRepo.FindByName(ctx, tx, req.Role)
		if err != nil {
			u.log.Warnf("Failed to find role %q: %+v", req.Role, err)
			return err
		}
		if role == nil {
			return fmt.Errorf("role %q is not seeded", req.Role)
		}
		user.RoleID = role.ID

		if err := u.userRepo.Create(tx, user); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateIdentity
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		librarian := &entity.LibrarianProfile{
			UserID:    user.ID,
			StaffID:   req.StaffID,
			RoleLabel: req.RoleLabel,
			HireDate:  time.Now().UTC().Truncate(24 * time.Hour),
		}
		if err := u.librarianRepo.Create(tx, librarian); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateIdentity
			}
			u.log.Warnf("Failed to create librarian profile: %+v", err)
			return err
		}
		user.LibrarianProfile = librarian

		if req.Role == entity.RoleAdmin {
			admin := &entity.AdminProfile{
				UserID:         user.ID,
				PrivilegeLevel: req.PrivilegeLevel,
			}
			if err := u.adminRepo.Create(tx, admin); err != nil {
				u.log.Warnf("Failed to create admin profile: %+v", err)
				return err
			}
			user.AdminProfile = admin
		}

		if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionStaffCreate, "user", fmt.Sprint(user.ID), req.Username); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    req.Role,
	}).Info("Staff account created")

	return converter.UserToResponse(user), nil
}

func (u *staffUsecase) GetStaff(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := u.findStaff(ctx, u.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *staffUsecase) findStaff(ctx context.Context, db *gorm.DB, userID uint) (*entity.User, error) {
	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil || (user.RoleID != entity.RoleIDLibrarian && user.RoleID != entity.RoleIDAdmin) {
		return nil, ErrStaffNotFound
	}

	librarian, err := u.librarianRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find librarian profile: %+v", err)
		return nil, err
	}
	if librarian == nil {
		u.log.Errorf("User %d has staff role but no librarian profile", userID)
		return nil, ErrInconsistentRole
	}
	user.LibrarianProfile = librarian

	if user.RoleID == entity.RoleIDAdmin {
		admin, err := u.adminRepo.FindByUserID(db, userID)
		if err != nil {
			u.log.Warnf("Failed to find admin profile: %+v", err)
			return nil, err
		}
		if admin == nil {
			u.log.Errorf("User %d has admin role but no admin profile", userID)
			return nil, ErrInconsistentRole
		}
		user.AdminProfile = admin
	}

	return user, nil
}

func (u *staffUsecase) ListStaff(ctx context.Context) (*dto.StaffListResponse, error) {
	db := u.db.WithContext(ctx)

	librarians, err := u.librarianRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list librarian profiles: %+v", err)
		return nil, err
	}

	staff := make([]dto.UserResponse, 0, len(librarians))
	for i := range librarians {
		user := librarians[i].User
		user.LibrarianProfile = &librarians[i]
		if user.RoleID == entity.RoleIDAdmin {
			admin, err := u.adminRepo.FindByUserID(db, user.ID)
			if err != nil {
				u.log.Warnf("Failed to find admin profile: %+v", err)
				return nil, err
			}
			user.AdminProfile = admin
		}
		staff = append(staff, *converter.UserToResponse(&user))
	}

	return &dto.StaffListResponse{
		Staff: staff,
		Total: len(staff),
	}, nil
}

func (u *staffUsecase) UpdateStaff(ctx context.Context, actorID uint, userID uint, req *dto.UpdateStaffRequest) (*dto.UserResponse, error) {
	var user *entity.User

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = u.findStaff(ctx, tx, userID)
		if err != nil {
			return err
		}

		if req.Password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				u.log.Warnf("Failed to hash password: %+v", err)
				return err
			}
			user.Password = string(hashed)
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if err := u.userRepo.Update(tx, user); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateIdentity
			}
			u.log.Warnf("Failed to update user: %+v", err)
			return err
		}

		if req.RoleLabel != "" {
			user.LibrarianProfile.RoleLabel = req.RoleLabel
			if err := u.librarianRepo.Update(tx, user.LibrarianProfile); err != nil {
				u.log.Warnf("Failed to update librarian profile: %+v", err)
				return err
			}
		}

		if req.PrivilegeLevel != "" && user.AdminProfile != nil {
			user.AdminProfile.PrivilegeLevel = req.PrivilegeLevel
			if err := u.adminRepo.Update(tx, user.AdminProfile); err != nil {
				u.log.Warnf("Failed to update admin profile: %+v", err)
				return err
			}
		}

		if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionStaffUpdate, "user", fmt.Sprint(userID), nil, req); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// DeleteStaff removes a staff account with its extension rows in dependency
// order: admin profile first, then librarian profile, then the user row. Any
// failure rolls back the whole chain.
func (u *staffUsecase) DeleteStaff(ctx context.Context, actorID uint, userID uint) error {
	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		user, err := u.findStaff(ctx, tx, userID)
		if err != nil {
			return err
		}

		if user.RoleID == entity.RoleIDAdmin {
			if _, err := u.adminRepo.DeleteByUserID(tx, userID); err != nil {
				u.log.Warnf("Failed to delete admin profile: %+v", err)
				return err
			}
		}

		if _, err := u.librarianRepo.DeleteByUserID(tx, userID); err != nil {
			u.log.Warnf("Failed to delete librarian profile: %+v", err)
			return err
		}

		rows, err := u.userRepo.Delete(tx, userID)
		if err != nil {
			u.log.Warnf("Failed to delete user: %+v", err)
			return err
		}
		if rows == 0 {
			return ErrStaffNotFound
		}

		if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionStaffDelete, "user", fmt.Sprint(userID), user.Username); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.log.WithFields(logrus.Fields{"user_id": userID}).Info("Staff account deleted")
	return nil
}
