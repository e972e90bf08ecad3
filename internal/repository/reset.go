package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tripwise/internal/db"
)

// ClearPlanData deletes the stored draft and the handoff history in one
// transaction. It is only meaningful when both live in the same SQLite file.
func ClearPlanData(ctx context.Context, uow db.UnitOfWork) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteKVRepo(tx).Delete(ctx, DraftKey); err != nil {
			return fmt.Errorf("clearing draft: %w", err)
		}
		if err := NewSQLiteHandoffLogRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return nil
	})
}
