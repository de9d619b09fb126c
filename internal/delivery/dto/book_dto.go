package dto

import "time"

// Request DTOs

type CreateBookRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=255"`
	Author string `json:"author" validate:"omitempty,max=255"`
	Genre  string `json:"genre" validate:"omitempty,max=100"`
}

type UpdateBookRequest struct {
	Title  string `json:"title" validate:"omitempty,min=1,max=255"`
	Author string `json:"author" validate:"omitempty,max=255"`
	Genre  string `json:"genre" validate:"omitempty,max=100"`
}

// Response DTOs

type BookResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookListResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}
