package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGiveawayRequest describes the admin giveaway creation payload.
type CreateGiveawayRequest struct {
	Title                string          `json:"title"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	MaxEntries           *int            `json:"max_entries"`
	AdditionalEntryPrice decimal.Decimal `json:"additional_entry_price"`
}

// TransitionRequest carries the target lifecycle status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// GiveawayResponse is the public giveaway summary.
type GiveawayResponse struct {
	ID                   int64           `json:"id"`
	Title                string          `json:"title"`
	Status               string          `json:"status"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	MaxEntries           *int            `json:"max_entries,omitempty"`
	AdditionalEntryPrice decimal.Decimal `json:"additional_entry_price"`
	CreatedAt            time.Time       `json:"created_at"`
}
