package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager implements shared.Transactor on top of GORM transactions. The
// transactional handle travels in the context, so every repository built on
// conn picks it up without knowing a transaction is open.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager bound to the given connection
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. The transaction
// commits when fn returns nil and rolls back when it returns an error.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transactional handle carried by the context, falling back
// to the repository's own connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
