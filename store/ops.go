// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/tabletamer/server/batch"
)

// Collections addressable through batch operations.
const (
	CollectionGuests = "guest"
	CollectionTables = "seating_table"
	CollectionEvents = "event"
)

// updatableColumns whitelists the fields batch updates may touch, per
// collection. Timestamps are maintained by the store itself.
var updatableColumns = map[string]map[string]bool{
	CollectionGuests: {
		"full_name": true, "first_name": true, "last_name": true,
		"phone": true, "email": true, "notes": true, "table_id": true,
	},
	CollectionTables: {
		"name": true, "capacity": true, "color": true,
	},
	CollectionEvents: {
		"name": true, "description": true, "theme": true,
	},
}

// ApplyOperations executes a heterogeneous list of operations in a single
// transaction. This is the atomic multi-document write a batch chunk maps
// to: the whole chunk applies or none of it does.
func (s *Store) ApplyOperations(ctx context.Context, ops []batch.Operation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, op := range ops {
		if err := applyOperation(ctx, tx, op); err != nil {
			return fmt.Errorf("operation %d (%s %s/%s): %w", i, op.Kind, op.Collection, op.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func applyOperation(ctx context.Context, tx *sql.Tx, op batch.Operation) error {
	allowed, ok := updatableColumns[op.Collection]
	if !ok {
		return fmt.Errorf("unknown collection %q", op.Collection)
	}

	switch op.Kind {
	case batch.KindUpdate:
		return applyUpdate(ctx, tx, op, allowed)
	case batch.KindDelete:
		res, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, op.Collection), op.ID)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return ErrNotFound
		}
		return nil
	case batch.KindCreate:
		return fmt.Errorf("creates must go through the typed accessors")
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

func applyUpdate(ctx context.Context, tx *sql.Tx, op batch.Operation, allowed map[string]bool) error {
	if len(op.Data) == 0 {
		return fmt.Errorf("empty update")
	}

	// Deterministic column order keeps the generated SQL stable.
	cols := make([]string, 0, len(op.Data))
	for col := range op.Data {
		if !allowed[col] {
			return fmt.Errorf("column %q not updatable", col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	query := `UPDATE ` + op.Collection + ` SET `
	args := make([]any, 0, len(cols)+2)
	for i, col := range cols {
		if i > 0 {
			query += ", "
		}
		// nil values become explicit NULLs (field delete)
		query += fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, op.Data[col])
	}
	query += fmt.Sprintf(", updated_at = $%d WHERE id = $%d", len(cols)+1, len(cols)+2)
	args = append(args, now(), op.ID)

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
