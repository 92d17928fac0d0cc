package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes the complimentary entry from paid ones.
type EntryType string

const (
	EntryTypeFree      EntryType = "free"
	EntryTypePurchased EntryType = "purchased"
)

// EntryStatus describes entry confirmation state.
type EntryStatus string

const (
	// EntryStatusPending marks purchased entries awaiting payment confirmation.
	EntryStatusPending EntryStatus = "pending"
	EntryStatusEntered EntryStatus = "entered"
)

// Entry is a single registered participation slot for one user in one giveaway.
// EntryNumber is unique and strictly increasing within a giveaway.
type Entry struct {
	ID            int64
	GiveawayID    int64
	UserID        int64
	EntryNumber   int
	Type          EntryType
	PurchasePrice *decimal.Decimal
	Status        EntryStatus
	PaymentRef    *string
	CreatedAt     time.Time
}

// EntrySummary aggregates a user's standing within a giveaway.
type EntrySummary struct {
	FreeEntryUsed  bool
	TotalEntries   int
	PendingEntries int
}
