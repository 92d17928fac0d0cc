package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prizelab/giveawayd/internal/domain/model"
)

// EntryFacadeStub provides controllable behaviour for entry endpoints.
type EntryFacadeStub struct {
	EnterFreeFn   func(context.Context, int64, int64) (*model.Entry, error)
	PurchaseFn    func(context.Context, int64, int64, int) (*model.PaymentIntent, []model.Entry, error)
	EntryStatusFn func(context.Context, int64, int64) (*model.EntrySummary, error)
}

// EnterFree delegates to provided function or returns a default entry.
func (s EntryFacadeStub) EnterFree(ctx context.Context, giveawayID, userID int64) (*model.Entry, error) {
	if s.EnterFreeFn != nil {
		return s.EnterFreeFn(ctx, giveawayID, userID)
	}
	return &model.Entry{ID: 1, GiveawayID: giveawayID, UserID: userID, EntryNumber: 1, Type: model.EntryTypeFree, Status: model.EntryStatusEntered}, nil
}

// PurchaseEntries delegates or returns a default pending purchase.
func (s EntryFacadeStub) PurchaseEntries(ctx context.Context, giveawayID, userID int64, quantity int) (*model.PaymentIntent, []model.Entry, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, giveawayID, userID, quantity)
	}
	intent := &model.PaymentIntent{Reference: "pi-test", Status: model.PaymentIntentStatusPending, Amount: decimal.NewFromInt(5), Currency: "usd"}
	entries := make([]model.Entry, 0, quantity)
	for i := 0; i < quantity; i++ {
		entries = append(entries, model.Entry{ID: int64(i + 2), GiveawayID: giveawayID, UserID: userID, EntryNumber: i + 2, Type: model.EntryTypePurchased, Status: model.EntryStatusPending})
	}
	return intent, entries, nil
}

// EntryStatus returns configured or default standing.
func (s EntryFacadeStub) EntryStatus(ctx context.Context, giveawayID, userID int64) (*model.EntrySummary, error) {
	if s.EntryStatusFn != nil {
		return s.EntryStatusFn(ctx, giveawayID, userID)
	}
	return &model.EntrySummary{FreeEntryUsed: true, TotalEntries: 1}, nil
}

// DrawFacadeStub simulates draw operations.
type DrawFacadeStub struct {
	DrawFn    func(context.Context, int64, int) ([]model.Winner, error)
	WinnersFn func(context.Context, int64) ([]model.Winner, error)
}

// DrawWinners delegates or returns a single default winner.
func (s DrawFacadeStub) DrawWinners(ctx context.Context, giveawayID int64, requested int) ([]model.Winner, error) {
	if s.DrawFn != nil {
		return s.DrawFn(ctx, giveawayID, requested)
	}
	return []model.Winner{{ID: 1, GiveawayID: giveawayID, UserID: 1, EntryID: 1, EntryNumber: 1, SelectedAt: time.Unix(0, 0), ClaimStatus: model.PrizeClaimStatusUnclaimed}}, nil
}

// Winners delegates or returns preconfigured history.
func (s DrawFacadeStub) Winners(ctx context.Context, giveawayID int64) ([]model.Winner, error) {
	if s.WinnersFn != nil {
		return s.WinnersFn(ctx, giveawayID)
	}
	return []model.Winner{{ID: 1, GiveawayID: giveawayID, UserID: 1}}, nil
}

// PointsFacadeStub simulates ledger operations.
type PointsFacadeStub struct {
	BalanceFn      func(context.Context, int64) (int64, error)
	TransactionsFn func(context.Context, int64) ([]model.PointsTransaction, error)
	SpendFn        func(context.Context, int64, int64, string) (*model.PointsTransaction, error)
	GrantFn        func(context.Context, int64, model.TransactionType, int64, string) (*model.PointsTransaction, error)
}

// Balance returns configured or default balance.
func (s PointsFacadeStub) Balance(ctx context.Context, userID int64) (int64, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return 70, nil
}

// Transactions returns configured history.
func (s PointsFacadeStub) Transactions(ctx context.Context, userID int64) ([]model.PointsTransaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, userID)
	}
	return []model.PointsTransaction{{ID: 1, UserID: userID, Type: model.TransactionTypeEarned, Amount: 100}}, nil
}

// SpendPoints executes configured spend handler.
func (s PointsFacadeStub) SpendPoints(ctx context.Context, userID, amount int64, description string) (*model.PointsTransaction, error) {
	if s.SpendFn != nil {
		return s.SpendFn(ctx, userID, amount, description)
	}
	return &model.PointsTransaction{ID: 2, UserID: userID, Type: model.TransactionTypeSpent, Amount: -amount, Description: description}, nil
}

// GrantPoints executes configured grant handler.
func (s PointsFacadeStub) GrantPoints(ctx context.Context, userID int64, txType model.TransactionType, amount int64, description string) (*model.PointsTransaction, error) {
	if s.GrantFn != nil {
		return s.GrantFn(ctx, userID, txType, amount, description)
	}
	return &model.PointsTransaction{ID: 3, UserID: userID, Type: txType, Amount: amount, Description: description}, nil
}

// GiveawayFacadeStub simulates giveaway management operations.
type GiveawayFacadeStub struct {
	CreateFn     func(context.Context, *model.Giveaway) (*model.Giveaway, error)
	TransitionFn func(context.Context, int64, model.GiveawayStatus) (*model.Giveaway, error)
	GetFn        func(context.Context, int64) (*model.Giveaway, error)
	ListFn       func(context.Context) ([]model.Giveaway, error)
}

// CreateGiveaway delegates or echoes the giveaway with an identifier.
func (s GiveawayFacadeStub) CreateGiveaway(ctx context.Context, giveaway *model.Giveaway) (*model.Giveaway, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, giveaway)
	}
	created := *giveaway
	created.ID = 1
	created.Status = model.GiveawayStatusDraft
	return &created, nil
}

// TransitionGiveaway delegates or returns the giveaway in the new status.
func (s GiveawayFacadeStub) TransitionGiveaway(ctx context.Context, id int64, to model.GiveawayStatus) (*model.Giveaway, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, id, to)
	}
	return &model.Giveaway{ID: id, Status: to}, nil
}

// Giveaway delegates or returns a default active giveaway.
func (s GiveawayFacadeStub) Giveaway(ctx context.Context, id int64) (*model.Giveaway, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Giveaway{ID: id, Title: "stub", Status: model.GiveawayStatusActive}, nil
}

// Giveaways delegates or returns a single-element list.
func (s GiveawayFacadeStub) Giveaways(ctx context.Context) ([]model.Giveaway, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Giveaway{{ID: 1, Title: "stub"}}, nil
}

// WebhookFacadeStub simulates payment settlement operations.
type WebhookFacadeStub struct {
	ConfirmFn func(context.Context, string) (int, error)
	CancelFn  func(context.Context, string) (int, error)
}

// ConfirmPayment delegates or reports one confirmed entry.
func (s WebhookFacadeStub) ConfirmPayment(ctx context.Context, reference string) (int, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, reference)
	}
	return 1, nil
}

// CancelPayment delegates or reports one cancelled entry.
func (s WebhookFacadeStub) CancelPayment(ctx context.Context, reference string) (int, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, reference)
	}
	return 1, nil
}

// PlatformFacadeStub aggregates facade dependencies for HTTP layer tests.
type PlatformFacadeStub struct {
	EntryFacadeStub
	DrawFacadeStub
	PointsFacadeStub
	GiveawayFacadeStub
	WebhookFacadeStub
}

// PaymentProviderStub fetches and creates payment intents for tests.
type PaymentProviderStub struct {
	CreateFn func(context.Context, decimal.Decimal, string, string) (*model.PaymentIntent, error)
	FetchFn  func(context.Context, string) (*model.PaymentIntent, error)
	Intent   *model.PaymentIntent
	Err      error
}

// CreateIntent returns configured response or a pending intent.
func (s PaymentProviderStub) CreateIntent(ctx context.Context, amount decimal.Decimal, currency, idempotencyKey string) (*model.PaymentIntent, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, amount, currency, idempotencyKey)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Intent != nil {
		return s.Intent, nil
	}
	return &model.PaymentIntent{Reference: "pi-" + idempotencyKey, Status: model.PaymentIntentStatusPending, Amount: amount, Currency: currency}, nil
}

// FetchIntent returns configured response or a succeeded intent.
func (s PaymentProviderStub) FetchIntent(ctx context.Context, reference string) (*model.PaymentIntent, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, reference)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Intent != nil {
		return s.Intent, nil
	}
	return &model.PaymentIntent{Reference: reference, Status: model.PaymentIntentStatusSucceeded}, nil
}

// ReconcileCall stores information about settlement invocations.
type ReconcileCall struct {
	Reference string
	Confirmed bool
}

// ReconcilerFacadeStub mimics worker interactions with the platform facade.
type ReconcilerFacadeStub struct {
	Batches   [][]string
	PendingFn func(context.Context, time.Duration, int) ([]string, error)
	CheckFn   func(context.Context, string) (*model.PaymentIntent, error)
	ConfirmFn func(context.Context, string) (int, error)
	CancelFn  func(context.Context, string) (int, error)
	Calls     []ReconcileCall

	mu               sync.Mutex
	pendingCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingPayments returns batches from the configured queue.
func (s *ReconcilerFacadeStub) PendingPayments(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, olderThan, limit)
	}
	call := atomic.AddInt32(&s.pendingCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckPayment returns configured intent data.
func (s *ReconcilerFacadeStub) CheckPayment(ctx context.Context, reference string) (*model.PaymentIntent, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, reference)
	}
	return &model.PaymentIntent{Reference: reference, Status: model.PaymentIntentStatusSucceeded}, nil
}

// ConfirmPayment records the confirmation.
func (s *ReconcilerFacadeStub) ConfirmPayment(ctx context.Context, reference string) (int, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, reference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, ReconcileCall{Reference: reference, Confirmed: true})
	return 1, nil
}

// CancelPayment records the cancellation.
func (s *ReconcilerFacadeStub) CancelPayment(ctx context.Context, reference string) (int, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, reference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, ReconcileCall{Reference: reference, Confirmed: false})
	return 1, nil
}
