package dto

// Request DTOs

// CreateStaffRequest creates a librarian account, or an admin account when
// role is "admin" (which additionally requires privilege_level).
type CreateStaffRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=100"`
	Password       string `json:"password" validate:"required,min=6"`
	Name           string `json:"name" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,min=3,max=20"`
	Role           string `json:"role" validate:"required,oneof=librarian admin"`
	StaffID        string `json:"staff_id" validate:"required,min=1,max=50"`
	RoleLabel      string `json:"role_label" validate:"omitempty,max=100"`
	PrivilegeLevel string `json:"privilege_level" validate:"required_if=Role admin,omitempty,max=50"`
}

type UpdateStaffRequest struct {
	Password       string `json:"password" validate:"omitempty,min=6"`
	Name           string `json:"name" validate:"omitempty,min=2"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,min=3,max=20"`
	RoleLabel      string `json:"role_label" validate:"omitempty,max=100"`
	PrivilegeLevel string `json:"privilege_level" validate:"omitempty,max=50"`
}

// Response DTOs

type StaffListResponse struct {
	Staff []UserResponse `json:"staff"`
	Total int            `json:"total"`
}
