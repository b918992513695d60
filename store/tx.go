package store

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// InTransaction runs fn inside a database transaction. The transaction
// handle travels in the context, so repository methods called from fn join
// it transparently. Nested calls reuse the outer transaction.
func (s *Store) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn resolves the database handle for ctx, preferring an in-flight
// transaction.
func (s *Store) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}
