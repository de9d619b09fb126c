package converter

import (
	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"
)

// BookToResponse converts a Book entity to BookResponse DTO
func BookToResponse(book *entity.Book) *dto.BookResponse {
	if book == nil {
		return nil
	}

	return &dto.BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Genre:     book.Genre,
		Status:    string(book.Status),
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}

// BooksToResponses converts a slice of Book entities to slice of BookResponse DTOs
func BooksToResponses(books []entity.Book) []dto.BookResponse {
	responses := make([]dto.BookResponse, len(books))
	for i, book := range books {
		responses[i] = *BookToResponse(&book)
	}
	return responses
}
