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
	"library-lending/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUnknownUser       = errors.New("unknown username")
	ErrBadCredentials    = errors.New("invalid username or password")
	ErrInconsistentRole  = errors.New("role extension record missing for user")
	ErrDuplicateIdentity = errors.New("username or email already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrTokenRevoked      = errors.New("token has been revoked")
)

type AuthUsecase interface {
	// Authenticate resolves credentials into the role variant for the user:
	// base fields plus the reader/librarian/admin extension payload.
	Authenticate(ctx context.Context, username, password string) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
	RegisterReader(ctx context.Context, req *dto.RegisterReaderRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	db            *gorm.DB
	transactor    repository.Transactor
	log           *logrus.Logger
	userRepo      repository.UserRepository
	roleRepo      repository.RoleRepository
	readerRepo    repository.ReaderProfileRepository
	librarianRepo repository.LibrarianProfileRepository
	adminRepo     repository.AdminProfileRepository
	auditService  service.AuditService
	jwtService    *jwt.JWTService
	redisClient   *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	transactor repository.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	readerRepo repository.ReaderProfileRepository,
	librarianRepo repository.LibrarianProfileRepository,
	adminRepo repository.AdminProfileRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:            db,
		transactor:    transactor,
		log:           log,
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		readerRepo:    readerRepo,
		librarianRepo: librarianRepo,
		adminRepo:     adminRepo,
		auditService:  auditService,
		jwtService:    jwtService,
		redisClient:   redisClient,
	}
}

func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (*dto.UserResponse, error) {
	user, err := u.authenticateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

// authenticateUser verifies credentials and materializes the role extensions
// onto the returned user.
func (u *authUsecase) authenticateUser(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	if err := u.resolveRoleExtensions(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// resolveRoleExtensions loads the extension rows the user's role calls for.
// A missing extension is a data-integrity fault, not a lookup miss: the user
// row claims a role the extension tables cannot back.
func (u *authUsecase) resolveRoleExtensions(ctx context.Context, user *entity.User) error {
	db := u.db.WithContext(ctx)

	switch user.RoleID {
	case entity.RoleIDReader:
		profile, err := u.readerRepo.FindByUserID(db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find reader profile: %+v", err)
			return err
		}
		if profile == nil {
			u.log.Errorf("User %d has reader role but no reader profile", user.ID)
			return ErrInconsistentRole
		}
		user.ReaderProfile = profile

	case entity.RoleIDLibrarian:
		profile, err := u.librarianRepo.FindByUserID(db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find librarian profile: %+v", err)
			return err
		}
		if profile == nil {
			u.log.Errorf("User %d has librarian role but no librarian profile", user.ID)
			return ErrInconsistentRole
		}
		user.LibrarianProfile = profile

	case entity.RoleIDAdmin:
		librarian, err := u.librarianRepo.FindByUserID(db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find librarian profile: %+v", err)
			return err
		}
		admin, err := u.adminRepo.FindByUserID(db, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find admin profile: %+v", err)
			return err
		}
		if librarian == nil || admin == nil {
			u.log.Errorf("User %d has admin role but librarian/admin profile is missing", user.ID)
			return ErrInconsistentRole
		}
		user.LibrarianProfile = librarian
		user.AdminProfile = admin

	default:
		// Unknown role value: fall through as a bare user. Should not occur
		// under a well-formed schema.
		u.log.Warnf("User %d has unrecognized role id %d", user.ID, user.RoleID)
	}

	return nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.authenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Username, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Username, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.storeTokens(ctx, user.ID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, "user", fmt.Sprint(user.ID), user.Username); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) storeTokens(ctx context.Context, userID uint, accessTokenID, refreshTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%d:%s", userID, accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%d:%s", userID, refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:*:%s", accessTokenID),
		fmt.Sprintf("refresh_token:*:%s", refreshTokenID),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%d:%s", claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single-use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(claims.UserID, claims.Username, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(claims.UserID, claims.Username, claims.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.storeTokens(ctx, claims.UserID, accessTokenID, refreshTokenID); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.resolveRoleExtensions(ctx, user); err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// RegisterReader creates the base user row and its reader extension in one
// transaction, so a half-registered reader can never be observed.
func (u *authUsecase) RegisterReader(ctx context.Context, req *dto.RegisterReaderRequest) (*dto.UserResponse, error) {
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

	var profile *entity.ReaderProfile
	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		role, err := u.roleRepo.FindByName(ctx, tx, entity.RoleReader)
		if err != nil {
			u.log.Warnf("Failed to find reader role: %+v", err)
			return err
		}
		if role == nil {
			return fmt.Errorf("role %q is not seeded", entity.RoleReader)
		}
		user.RoleID = role.ID

		if err := u.userRepo.Create(tx, user); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateIdentity
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		profile = &entity.ReaderProfile{
			UserID:         user.ID,
			MembershipDate: time.Now().UTC().Truncate(24 * time.Hour),
		}
		if err := u.readerRepo.Create(tx, profile); err != nil {
			u.log.Warnf("Failed to create reader profile: %+v", err)
			return err
		}

		if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionReaderRegister, "reader_profile", fmt.Sprint(profile.ID), req.Username); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.ReaderProfile = profile
	return converter.UserToResponse(user), nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation (code 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key
// violation (code 23503)
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
