package dto

// StatisticsResponse carries the derived circulation counts.
// books_available + books_on_loan = total_books always holds.
type StatisticsResponse struct {
	TotalBooks     int64 `json:"total_books"`
	TotalReaders   int64 `json:"total_readers"`
	BooksAvailable int64 `json:"books_available"`
	BooksOnLoan    int64 `json:"books_on_loan"`
}
