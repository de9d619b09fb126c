package handler

import (
	"encoding/json"
	"net/http"

	"library-lending/internal/delivery/dto"
	"library-lending/internal/delivery/http/middleware"
	"library-lending/internal/usecase"
	"library-lending/pkg/response"
	"library-lending/pkg/validator"
)

type StaffHandler struct {
	staffUsecase usecase.StaffUsecase
	validator    *validator.CustomValidator
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase, validator *validator.CustomValidator) *StaffHandler {
	return &StaffHandler{
		staffUsecase: staffUsecase,
		validator:    validator,
	}
}

// Create handles creating a librarian or admin account
// @Summary Create a staff account
// @Description Create a librarian account, or an admin account when role is admin
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff [post]
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.staffUsecase.CreateStaff(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDuplicateIdentity:
			response.Conflict(w, "Username, email, or staff ID already exists")
		default:
			response.InternalServerError(w, "Failed to create staff account")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Staff account created successfully", user)
}

// Get handles fetching one staff account
// @Summary Get a staff account
// @Description Get one staff member by user ID
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [get]
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.staffUsecase.GetStaff(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff member not found")
		case usecase.ErrInconsistentRole:
			response.InternalServerError(w, "Staff account is in an inconsistent state")
		default:
			response.InternalServerError(w, "Failed to get staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member retrieved successfully", user)
}

// List handles listing all staff accounts
// @Summary List staff accounts
// @Description List every librarian and admin account
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /staff [get]
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staffUsecase.ListStaff(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list staff")
		return
	}

	response.Success(w, http.StatusOK, "Staff retrieved successfully", staff)
}

// Update handles editing a staff account
// @Summary Update a staff account
// @Description Update staff account fields and extension data
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateStaffRequest true "Update Staff Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.staffUsecase.UpdateStaff(r.Context(), actorID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff member not found")
		case usecase.ErrDuplicateIdentity:
			response.Conflict(w, "Email already exists")
		case usecase.ErrInconsistentRole:
			response.InternalServerError(w, "Staff account is in an inconsistent state")
		default:
			response.InternalServerError(w, "Failed to update staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member updated successfully", user)
}

// Delete handles removing a staff account
// @Summary Delete a staff account
// @Description Delete a staff account with all its role extension records
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.staffUsecase.DeleteStaff(r.Context(), actorID, userID); err != nil {
		switch err {
		case usecase.ErrStaffNotFound:
			response.NotFound(w, "Staff member not found")
		case usecase.ErrInconsistentRole:
			response.InternalServerError(w, "Staff account is in an inconsistent state")
		default:
			response.InternalServerError(w, "Failed to delete staff member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Staff member deleted successfully", nil)
}
