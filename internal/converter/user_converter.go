package converter

import (
	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Role-extension payloads are included when they are loaded, so the result is
// the role variant: reader users carry ReaderProfile, librarians carry
// LibrarianProfile, admins carry LibrarianProfile and AdminProfile.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      entity.RoleName(user.RoleID),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Role.RoleName != "" {
		response.Role = user.Role.RoleName
	}

	if user.ReaderProfile != nil {
		response.ReaderProfile = ReaderProfileToResponse(user.ReaderProfile)
	}

	if user.LibrarianProfile != nil {
		response.LibrarianProfile = LibrarianProfileToResponse(user.LibrarianProfile)
	}

	if user.AdminProfile != nil {
		response.AdminProfile = AdminProfileToResponse(user.AdminProfile)
	}

	return response
}

func ReaderProfileToResponse(profile *entity.ReaderProfile) *dto.ReaderProfileResponse {
	if profile == nil {
		return nil
	}
	return &dto.ReaderProfileResponse{
		ReaderID:       profile.ID,
		MembershipDate: profile.MembershipDate,
		TotalBorrowed:  profile.TotalBorrowed,
	}
}

func LibrarianProfileToResponse(profile *entity.LibrarianProfile) *dto.LibrarianProfileResponse {
	if profile == nil {
		return nil
	}
	return &dto.LibrarianProfileResponse{
		LibrarianID: profile.ID,
		StaffID:     profile.StaffID,
		RoleLabel:   profile.RoleLabel,
		HireDate:    profile.HireDate,
	}
}

func AdminProfileToResponse(profile *entity.AdminProfile) *dto.AdminProfileResponse {
	if profile == nil {
		return nil
	}
	return &dto.AdminProfileResponse{
		AdminID:        profile.ID,
		PrivilegeLevel: profile.PrivilegeLevel,
	}
}
