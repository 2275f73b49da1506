package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Store bundles the generated queries with transaction support.
type Store interface {
	Querier

	// ExecTx runs fn inside a single database transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// SQLStore is the database/sql backed Store.
type SQLStore struct {
	*Queries
	db *sql.DB
}

// NewStore creates a Store over an open database handle.
func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		Queries: New(db),
		db:      db,
	}
}

// ExecTx implements Store.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
