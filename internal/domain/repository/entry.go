package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prizelab/giveawayd/internal/domain/model"
)

// EntryRepository handles admission and payment settlement of entries.
//
// AdmitFree and AdmitPurchased run the full admission transaction: giveaway
// state checks, capacity check, free-entry rules, and entry number assignment.
// Numbering is read-max-plus-one guarded by the (giveaway_id, entry_number)
// unique index; on conflict the transaction is retried a bounded number of
// times before ErrConcurrencyExhausted.
type EntryRepository interface {
	AdmitFree(ctx context.Context, giveawayID, userID int64) (*model.Entry, error)
	AdmitPurchased(ctx context.Context, giveawayID, userID int64, quantity int, price decimal.Decimal, paymentRef string) ([]model.Entry, error)
	UserSummary(ctx context.Context, giveawayID, userID int64) (*model.EntrySummary, error)
	// CountEntries reports the total number of entries in the giveaway,
	// pending ones included.
	CountEntries(ctx context.Context, giveawayID int64) (int, error)
	// ConfirmPayment flips all pending entries carrying the reference to
	// entered. Returns the number of entries confirmed; zero means the
	// reference was already settled or unknown.
	ConfirmPayment(ctx context.Context, paymentRef string) (int, error)
	// CancelPayment removes all pending entries carrying the reference,
	// leaving a gap in the numbering sequence.
	CancelPayment(ctx context.Context, paymentRef string) (int, error)
	// PendingPaymentRefs lists distinct payment references of purchased
	// entries still pending after the given age, oldest first.
	PendingPaymentRefs(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)
}
