package repository

import (
	"context"

	"github.com/prizelab/giveawayd/internal/domain/model"
)

// PickFunc selects winning entries from the eligible set. It runs inside the
// draw transaction; returning an error aborts the draw with no winners
// persisted.
type PickFunc func(entries []model.Entry) ([]model.Entry, error)

// WinnerRepository persists draw results atomically.
type WinnerRepository interface {
	// Draw verifies eligibility (giveaway drawable, has entered entries, no
	// prior winners), applies pick to the eligible entries, and persists all
	// selected winners in a single transaction. The giveaway is moved to
	// completed on success.
	Draw(ctx context.Context, giveawayID int64, pick PickFunc) ([]model.Winner, error)
	ListByGiveaway(ctx context.Context, giveawayID int64) ([]model.Winner, error)
}
