package usecase

import (
	"context"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/domain/repository"
)

// LedgerUseCase manages points ledger operations.
type LedgerUseCase struct {
	ledger repository.LedgerRepository
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(ledger repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledger: ledger}
}

// Grant appends a credit transaction. Only earned and purchased types are
// accepted and the amount must be positive.
func (u *LedgerUseCase) Grant(ctx context.Context, userID int64, txType model.TransactionType, amount int64, description string) (*model.PointsTransaction, error) {
	if txType != model.TransactionTypeEarned && txType != model.TransactionTypePurchased {
		return nil, domainErrors.ErrInvalidAmount
	}
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.ledger.Append(ctx, userID, txType, amount, description)
}

// Spend appends a debit transaction. The repository rejects the append when
// the resulting balance would be negative; nothing is partially applied.
func (u *LedgerUseCase) Spend(ctx context.Context, userID int64, amount int64, description string) (*model.PointsTransaction, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.ledger.Append(ctx, userID, model.TransactionTypeSpent, -amount, description)
}

// Balance derives the user's balance from the transaction log.
func (u *LedgerUseCase) Balance(ctx context.Context, userID int64) (int64, error) {
	return u.ledger.Balance(ctx, userID)
}

// History returns the user's transactions, newest first.
func (u *LedgerUseCase) History(ctx context.Context, userID int64) ([]model.PointsTransaction, error) {
	return u.ledger.ListByUser(ctx, userID)
}
