package repository

import (
	"context"
	"errors"
)

// ErrDuplicateKey is returned when a write violates a unique constraint
// (bill code, one open session per table, promotion code, staff email).
var ErrDuplicateKey = errors.New("repository: duplicate key")

// Transactor runs fn inside one database transaction. Repositories called
// with the ctx passed to fn join that transaction. Nested calls create a
// savepoint.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
