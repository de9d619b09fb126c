package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"library-lending/internal/delivery/dto"
	"library-lending/internal/delivery/http/middleware"
	"library-lending/internal/domain/entity"
	"library-lending/internal/usecase"
	"library-lending/pkg/response"
	"library-lending/pkg/validator"

	"github.com/gorilla/mux"
)

type BookHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewBookHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *BookHandler {
	return &BookHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

// Create handles adding a book to the catalog
// @Summary Create a new book
// @Description Add a book to the catalog, starting as available
// @Tags Books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBookRequest true "Create Book Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	book, err := h.catalogUsecase.CreateBook(r.Context(), actorID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create book")
		return
	}

	response.Success(w, http.StatusCreated, "Book created successfully", book)
}

// Get handles fetching a single book
// @Summary Get a book
// @Description Get one book by ID
// @Tags Books
// @Security BearerAuth
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	book, err := h.catalogUsecase.GetBook(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrBookNotFound:
			response.NotFound(w, "Book not found")
		default:
			response.InternalServerError(w, "Failed to get book")
		}
		return
	}

	response.Success(w, http.StatusOK, "Book retrieved successfully", book)
}

// List handles listing books with pagination
// @Summary List books
// @Description List catalog books with pagination
// @Tags Books
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	books, err := h.catalogUsecase.ListBooks(r.Context(), limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to list books")
		return
	}

	response.Success(w, http.StatusOK, "Books retrieved successfully", books)
}

// Search handles catalog search
// @Summary Search books
// @Description Search by case-insensitive substring on title or author, optionally filtered by status
// @Tags Books
// @Security BearerAuth
// @Produce json
// @Param q query string false "Keyword matched against title and author"
// @Param status query string false "Book status filter (available or borrowed)"
// @Success 200 {object} response.Response
// @Router /books/search [get]
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := &entity.BookFilter{
		Keyword: r.URL.Query().Get("q"),
		Status:  entity.BookStatus(r.URL.Query().Get("status")),
	}

	if filter.Status != "" && filter.Status != entity.BookStatusAvailable && filter.Status != entity.BookStatusBorrowed {
		response.Error(w, http.StatusBadRequest, "Invalid status filter", nil)
		return
	}

	books, err := h.catalogUsecase.SearchBooks(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search books")
		return
	}

	response.Success(w, http.StatusOK, "Books retrieved successfully", books)
}

// Update handles editing book details
// @Summary Update a book
// @Description Update title, author, or genre of a book
// @Tags Books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body dto.UpdateBookRequest true "Update Book Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	book, err := h.catalogUsecase.UpdateBook(r.Context(), actorID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookNotFound:
			response.NotFound(w, "Book not found")
		default:
			response.InternalServerError(w, "Failed to update book")
		}
		return
	}

	response.Success(w, http.StatusOK, "Book updated successfully", book)
}

// Delete handles removing a book from the catalog
// @Summary Delete a book
// @Description Remove a book; rejected while the book is on loan
// @Tags Books
// @Security BearerAuth
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.catalogUsecase.DeleteBook(r.Context(), actorID, id); err != nil {
		switch err {
		case usecase.ErrBookNotFound:
			response.NotFound(w, "Book not found")
		case usecase.ErrBookOnLoan:
			response.Conflict(w, "Book has an active loan and cannot be deleted")
		case usecase.ErrBookHasHistory:
			response.Conflict(w, "Book has borrow history and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete book")
		}
		return
	}

	response.Success(w, http.StatusOK, "Book deleted successfully", nil)
}

// parseIDParam reads the {id} path variable as an unsigned integer ID
func parseIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid ID", nil)
		return 0, false
	}
	return uint(id), true
}
