package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest describes the additional-entry purchase payload.
type PurchaseRequest struct {
	Quantity int `json:"quantity"`
}

// EntryResponse describes one admitted entry.
type EntryResponse struct {
	ID          int64     `json:"id"`
	GiveawayID  int64     `json:"giveaway_id"`
	EntryNumber int       `json:"entry_number"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntrySummaryResponse reports the caller's standing within a giveaway.
type EntrySummaryResponse struct {
	FreeEntryUsed  bool `json:"free_entry_used"`
	TotalEntries   int  `json:"total_entries"`
	PendingEntries int  `json:"pending_entries"`
}

// PaymentIntentResponse mirrors the provider intent created for a purchase.
type PaymentIntentResponse struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

// PurchaseResponse bundles the intent with the pending entries it covers.
type PurchaseResponse struct {
	Payment PaymentIntentResponse `json:"payment"`
	Entries []EntryResponse       `json:"entries"`
}
