package dto

import "time"

// BalanceResponse reports the caller's current points balance.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// TransactionResponse describes one points ledger record.
type TransactionResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpendRequest describes the points spend payload.
type SpendRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// GrantRequest describes the admin points grant payload.
type GrantRequest struct {
	UserID      int64  `json:"user_id"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}
