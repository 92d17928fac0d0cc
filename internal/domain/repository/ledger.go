package repository

import (
	"context"

	"github.com/prizelab/giveawayd/internal/domain/model"
)

// LedgerRepository manages the append-only points transaction log.
//
// Append serializes per user via a row lock on the ledger-head record and
// rejects spends that would drive the balance negative. The head row is a
// cached projection refreshed in the same transaction as every append; the
// transaction log remains the source of truth.
type LedgerRepository interface {
	Append(ctx context.Context, userID int64, txType model.TransactionType, amount int64, description string) (*model.PointsTransaction, error)
	// Balance sums the transaction log for the user.
	Balance(ctx context.Context, userID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]model.PointsTransaction, error)
	// RebuildBalance recomputes the head projection from the log and returns it.
	RebuildBalance(ctx context.Context, userID int64) (int64, error)
}
