package model

import "time"

// TransactionType classifies points ledger movements.
type TransactionType string

const (
	TransactionTypeEarned    TransactionType = "earned"
	TransactionTypeSpent     TransactionType = "spent"
	TransactionTypePurchased TransactionType = "purchased"
)

// PointsTransaction is one append-only ledger record. Amount is signed:
// negative for spent, positive otherwise. The user's balance is the sum of
// all transaction amounts; no stored balance field is authoritative.
type PointsTransaction struct {
	ID          int64
	UserID      int64
	Type        TransactionType
	Amount      int64
	Description string
	CreatedAt   time.Time
}
