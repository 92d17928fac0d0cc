package handlers

import (
	"context"

	"github.com/prizelab/giveawayd/internal/domain/model"
)

// EntryFacade encapsulates entry admission operations exposed via HTTP.
type EntryFacade interface {
	EnterFree(ctx context.Context, giveawayID, userID int64) (*model.Entry, error)
	PurchaseEntries(ctx context.Context, giveawayID, userID int64, quantity int) (*model.PaymentIntent, []model.Entry, error)
	EntryStatus(ctx context.Context, giveawayID, userID int64) (*model.EntrySummary, error)
}

// DrawFacade provides winner selection operations.
type DrawFacade interface {
	DrawWinners(ctx context.Context, giveawayID int64, requested int) ([]model.Winner, error)
	Winners(ctx context.Context, giveawayID int64) ([]model.Winner, error)
}

// PointsFacade provides ledger operations.
type PointsFacade interface {
	Balance(ctx context.Context, userID int64) (int64, error)
	Transactions(ctx context.Context, userID int64) ([]model.PointsTransaction, error)
	SpendPoints(ctx context.Context, userID, amount int64, description string) (*model.PointsTransaction, error)
	GrantPoints(ctx context.Context, userID int64, txType model.TransactionType, amount int64, description string) (*model.PointsTransaction, error)
}

// GiveawayAdminFacade provides giveaway lifecycle management.
type GiveawayAdminFacade interface {
	CreateGiveaway(ctx context.Context, giveaway *model.Giveaway) (*model.Giveaway, error)
	TransitionGiveaway(ctx context.Context, id int64, to model.GiveawayStatus) (*model.Giveaway, error)
	Giveaway(ctx context.Context, id int64) (*model.Giveaway, error)
	Giveaways(ctx context.Context) ([]model.Giveaway, error)
}

// PaymentWebhookFacade settles payment intents reported by the provider.
type PaymentWebhookFacade interface {
	ConfirmPayment(ctx context.Context, reference string) (int, error)
	CancelPayment(ctx context.Context, reference string) (int, error)
}

// PlatformFacade aggregates the full set of operations used across handlers.
type PlatformFacade interface {
	EntryFacade
	DrawFacade
	PointsFacade
	GiveawayAdminFacade
	PaymentWebhookFacade
}
