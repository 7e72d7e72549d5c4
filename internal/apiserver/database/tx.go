package database

import (
	"context"

	"gorm.io/gorm"
)

// txKey carries an open gorm transaction through a context. Multi-step
// writes (group deletion with its user cascade, the super-admin seed)
// run inside one so partial state never lands.
type txKey struct{}

// TransactionFromContext returns the transaction stored in ctx, or nil
// when the caller is not inside Transaction.
func TransactionFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return nil
	}
	return tx
}

// ContextWithTransaction returns a context whose database operations
// join the given transaction.
func ContextWithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// getDBFromContext prefers the context's transaction over the shared
// connection so nested store calls commit or roll back together.
func getDBFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	tx := TransactionFromContext(ctx)
	if tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
