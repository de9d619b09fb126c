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

type LendingHandler struct {
	lendingUsecase usecase.LendingUsecase
	validator      *validator.CustomValidator
}

func NewLendingHandler(lendingUsecase usecase.LendingUsecase, validator *validator.CustomValidator) *LendingHandler {
	return &LendingHandler{
		lendingUsecase: lendingUsecase,
		validator:      validator,
	}
}

// Borrow handles lending a book to a reader
// @Summary Borrow a book
// @Description Open a loan for a reader; the book must be available
// @Tags Lending
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BorrowBookRequest true "Borrow Book Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /borrows [post]
func (h *LendingHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req dto.BorrowBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	record, err := h.lendingUsecase.BorrowBook(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrReaderNotFound:
			response.NotFound(w, "Reader not found")
		case usecase.ErrBookNotFound:
			response.NotFound(w, "Book not found")
		case usecase.ErrBookAlreadyBorrowed:
			response.Conflict(w, "Book is already borrowed")
		default:
			response.InternalServerError(w, "Failed to borrow book")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Book borrowed successfully", record)
}

// Return handles closing the open loan for a book
// @Summary Return a book
// @Description Close the active loan, computing overdue days and the fine
// @Tags Lending
// @Security BearerAuth
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id}/return [post]
func (h *LendingHandler) Return(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	result, err := h.lendingUsecase.ReturnBook(r.Context(), actorID, bookID)
	if err != nil {
		switch err {
		case usecase.ErrBookNotFound:
			response.NotFound(w, "Book not found")
		case usecase.ErrNoActiveLoan:
			response.NotFound(w, "Book has no active loan")
		case usecase.ErrPartialReturn:
			response.InternalServerError(w, "Return could not be completed, no changes were applied")
		default:
			response.InternalServerError(w, "Failed to return book")
		}
		return
	}

	response.Success(w, http.StatusOK, "Book returned successfully", result)
}

// History handles listing a reader's borrow history
// @Summary Get borrowing history
// @Description List every borrow record for a reader, oldest first
// @Tags Lending
// @Security BearerAuth
// @Produce json
// @Param id path int true "Reader ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /readers/{id}/borrows [get]
func (h *LendingHandler) History(w http.ResponseWriter, r *http.Request) {
	readerID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	history, err := h.lendingUsecase.GetBorrowingHistory(r.Context(), readerID)
	if err != nil {
		switch err {
		case usecase.ErrReaderNotFound:
			response.NotFound(w, "Reader not found")
		default:
			response.InternalServerError(w, "Failed to get borrowing history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Borrowing history retrieved successfully", history)
}
