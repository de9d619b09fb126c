package converter

import (
	"library-lending/internal/delivery/dto"
	"library-lending/internal/domain/entity"
)

// BorrowRecordToResponse converts a BorrowRecord entity to BorrowRecordResponse DTO
func BorrowRecordToResponse(record *entity.BorrowRecord) *dto.BorrowRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.BorrowRecordResponse{
		RecordID:   record.ID,
		BookID:     record.BookID,
		ReaderID:   record.ReaderID,
		BorrowDate: record.BorrowDate,
		DueDate:    record.DueDate,
		ReturnDate: record.ReturnDate,
		FineAmount: record.FineAmount,
	}

	// Include book info if available
	if record.Book.ID != 0 {
		response.Book = BookToResponse(&record.Book)
	}

	return response
}

// BorrowRecordsToResponses converts a slice of BorrowRecord entities to slice of BorrowRecordResponse DTOs
func BorrowRecordsToResponses(records []entity.BorrowRecord) []dto.BorrowRecordResponse {
	responses := make([]dto.BorrowRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *BorrowRecordToResponse(&record)
	}
	return responses
}
