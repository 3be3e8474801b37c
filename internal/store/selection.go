package store

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/gctalent/talent-backoffice/internal/models"
	srvErrors "github.com/gctalent/talent-backoffice/pkg/errors"
)

// SelectionStore persists row selections per table.
type SelectionStore struct {
	db QueryInterceptor
}

func NewSelectionStore(db QueryInterceptor) *SelectionStore {
	return &SelectionStore{db: db}
}

// Get returns the selection or a ResourceNotFoundError.
func (s *SelectionStore) Get(ctx context.Context, table, id string) (*models.Selection, error) {
	sel := &models.Selection{ID: id, Table: table, RowIDs: []string{}}

	err := s.db.QueryRowContext(ctx, queryGetSelection, id, table).Scan(&sel.CreatedAt, &sel.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewSelectionNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, queryListSelectionRows, id, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rowID string
		if err := rows.Scan(&rowID); err != nil {
			return nil, err
		}
		sel.RowIDs = append(sel.RowIDs, rowID)
	}

	return sel, rows.Err()
}

// Save replaces the rows of the selection, creating it when missing.
func (s *SelectionStore) Save(ctx context.Context, sel *models.Selection) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, queryUpsertSelection, sel.ID, sel.Table); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, queryDeleteSelectionRows, sel.ID, sel.Table); err != nil {
		return err
	}
	for _, rowID := range slices.Compact(slices.Sorted(slices.Values(sel.RowIDs))) {
		if _, err := tx.ExecContext(ctx, queryInsertSelectionRow, sel.ID, sel.Table, rowID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SelectionStore) Delete(ctx context.Context, table, id string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, queryDeleteSelection, id, table)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return srvErrors.NewSelectionNotFoundError(id)
	}
	if _, err := tx.ExecContext(ctx, queryDeleteSelectionRows, id, table); err != nil {
		return err
	}

	return tx.Commit()
}
