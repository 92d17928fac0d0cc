package app

import (
	"context"
	"time"

	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/usecase"
)

// GiveawayFacade aggregates the platform's use cases behind the surface the
// HTTP handlers and the payment reconciler consume.
type GiveawayFacade struct {
	giveaways *usecase.GiveawayUseCase
	admission *usecase.AdmissionUseCase
	draws     *usecase.DrawUseCase
	ledger    *usecase.LedgerUseCase
	payments  usecase.PaymentProvider
}

// NewGiveawayFacade constructs GiveawayFacade.
func NewGiveawayFacade(giveaways *usecase.GiveawayUseCase, admission *usecase.AdmissionUseCase, draws *usecase.DrawUseCase, ledger *usecase.LedgerUseCase, payments usecase.PaymentProvider) *GiveawayFacade {
	return &GiveawayFacade{giveaways: giveaways, admission: admission, draws: draws, ledger: ledger, payments: payments}
}

func (f *GiveawayFacade) EnterFree(ctx context.Context, giveawayID, userID int64) (*model.Entry, error) {
	return f.admission.EnterFree(ctx, giveawayID, userID)
}

func (f *GiveawayFacade) PurchaseEntries(ctx context.Context, giveawayID, userID int64, quantity int) (*model.PaymentIntent, []model.Entry, error) {
	return f.admission.PurchaseEntries(ctx, giveawayID, userID, quantity)
}

func (f *GiveawayFacade) EntryStatus(ctx context.Context, giveawayID, userID int64) (*model.EntrySummary, error) {
	return f.admission.Status(ctx, giveawayID, userID)
}

func (f *GiveawayFacade) DrawWinners(ctx context.Context, giveawayID int64, requested int) ([]model.Winner, error) {
	return f.draws.Draw(ctx, giveawayID, requested)
}

func (f *GiveawayFacade) Winners(ctx context.Context, giveawayID int64) ([]model.Winner, error) {
	return f.draws.Winners(ctx, giveawayID)
}

func (f *GiveawayFacade) Balance(ctx context.Context, userID int64) (int64, error) {
	return f.ledger.Balance(ctx, userID)
}

func (f *GiveawayFacade) Transactions(ctx context.Context, userID int64) ([]model.PointsTransaction, error) {
	return f.ledger.History(ctx, userID)
}

func (f *GiveawayFacade) SpendPoints(ctx context.Context, userID, amount int64, description string) (*model.PointsTransaction, error) {
	return f.ledger.Spend(ctx, userID, amount, description)
}

func (f *GiveawayFacade) GrantPoints(ctx context.Context, userID int64, txType model.TransactionType, amount int64, description string) (*model.PointsTransaction, error) {
	return f.ledger.Grant(ctx, userID, txType, amount, description)
}

func (f *GiveawayFacade) CreateGiveaway(ctx context.Context, giveaway *model.Giveaway) (*model.Giveaway, error) {
	return f.giveaways.Create(ctx, giveaway)
}

func (f *GiveawayFacade) TransitionGiveaway(ctx context.Context, id int64, to model.GiveawayStatus) (*model.Giveaway, error) {
	return f.giveaways.Transition(ctx, id, to)
}

func (f *GiveawayFacade) Giveaway(ctx context.Context, id int64) (*model.Giveaway, error) {
	return f.giveaways.Get(ctx, id)
}

func (f *GiveawayFacade) Giveaways(ctx context.Context) ([]model.Giveaway, error) {
	return f.giveaways.List(ctx)
}

func (f *GiveawayFacade) ConfirmPayment(ctx context.Context, reference string) (int, error) {
	return f.admission.ConfirmPayment(ctx, reference)
}

func (f *GiveawayFacade) CancelPayment(ctx context.Context, reference string) (int, error) {
	return f.admission.CancelPayment(ctx, reference)
}

func (f *GiveawayFacade) PendingPayments(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	return f.admission.PendingPayments(ctx, olderThan, limit)
}

func (f *GiveawayFacade) CheckPayment(ctx context.Context, reference string) (*model.PaymentIntent, error) {
	return f.payments.FetchIntent(ctx, reference)
}
