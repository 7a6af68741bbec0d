package catalog

import (
	"context"
	"database/sql"
	"errors"
)

// Tx is one catalog transaction. It exposes the same operations as Store.
type Tx struct {
	queries
	tx   *sql.Tx
	done bool
}

// Begin starts a transaction.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin", "", err)
	}
	return &Tx{queries: queries{db: tx, logger: s.logger}, tx: tx}, nil
}

// Commit makes the transaction's changes durable.
func (t *Tx) Commit() error {
	if t.done {
		return storageError("commit", "transaction already finished", nil)
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return storageError("commit", "", err)
	}
	return nil
}

// Rollback discards the transaction's changes. Calling it after Commit is a no-op.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return storageError("rollback", "", err)
	}
	return nil
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
