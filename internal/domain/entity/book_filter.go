package entity

// BookFilter is a domain-level filter for querying books.
// Used by repository layer to avoid coupling with delivery DTOs.
type BookFilter struct {
	Keyword string     // Substring match against title OR author (ILIKE)
	Status  BookStatus // Optional status filter
}
