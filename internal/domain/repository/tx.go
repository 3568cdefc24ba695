package repository

import (
	"context"
)

// TxManager runs fn inside one database transaction. Repository calls
// made with the context passed to fn join that transaction; any error
// rolls the whole unit back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
