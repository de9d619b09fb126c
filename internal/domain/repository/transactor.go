package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor scopes a unit of work to a single database transaction. The
// callback receives the transaction handle to pass into repositories; any
// error (or panic) rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
