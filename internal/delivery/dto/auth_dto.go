package dto

import "time"

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterReaderRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=3,max=20"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserResponse is the role variant returned by authentication: the base user
// fields plus exactly the extension payload the user's role calls for.
type UserResponse struct {
	ID               uint                      `json:"id"`
	Username         string                    `json:"username"`
	Email            string                    `json:"email"`
	Name             string                    `json:"name"`
	Phone            string                    `json:"phone,omitempty"`
	Role             string                    `json:"role"`
	ReaderProfile    *ReaderProfileResponse    `json:"reader_profile,omitempty"`
	LibrarianProfile *LibrarianProfileResponse `json:"librarian_profile,omitempty"`
	AdminProfile     *AdminProfileResponse     `json:"admin_profile,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

type ReaderProfileResponse struct {
	ReaderID       uint      `json:"reader_id"`
	MembershipDate time.Time `json:"membership_date"`
	TotalBorrowed  int       `json:"total_borrowed"`
}

type LibrarianProfileResponse struct {
	LibrarianID uint      `json:"librarian_id"`
	StaffID     string    `json:"staff_id"`
	RoleLabel   string    `json:"role_label,omitempty"`
	HireDate    time.Time `json:"hire_date"`
}

type AdminProfileResponse struct {
	AdminID        uint   `json:"admin_id"`
	PrivilegeLevel string `json:"privilege_level"`
}
