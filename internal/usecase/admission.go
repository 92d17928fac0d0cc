package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/domain/repository"
)

// PaymentProvider describes the external payment collaborator used for
// purchased entries.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency, idempotencyKey string) (*model.PaymentIntent, error)
	FetchIntent(ctx context.Context, reference string) (*model.PaymentIntent, error)
}

// PurchaseCurrency is the settlement currency for additional entries.
const PurchaseCurrency = "usd"

// AdmissionUseCase decides whether a user may register entries in a giveaway.
type AdmissionUseCase struct {
	giveaways repository.GiveawayRepository
	entries   repository.EntryRepository
	payments  PaymentProvider
}

// NewAdmissionUseCase constructs AdmissionUseCase.
func NewAdmissionUseCase(g repository.GiveawayRepository, e repository.EntryRepository, p PaymentProvider) *AdmissionUseCase {
	return &AdmissionUseCase{giveaways: g, entries: e, payments: p}
}

// EnterFree admits the user's single complimentary entry. The repository
// enforces all admission preconditions atomically.
func (u *AdmissionUseCase) EnterFree(ctx context.Context, giveawayID, userID int64) (*model.Entry, error) {
	return u.entries.AdmitFree(ctx, giveawayID, userID)
}

// PurchaseEntries creates a payment intent for quantity additional entries and
// admits them in pending state. Entries become entered only once the payment
// webhook confirms the intent.
func (u *AdmissionUseCase) PurchaseEntries(ctx context.Context, giveawayID, userID int64, quantity int) (*model.PaymentIntent, []model.Entry, error) {
	if !ValidatePurchaseQuantity(quantity) {
		return nil, nil, domainErrors.ErrInvalidQuantity
	}

	giveaway, err := u.giveaways.GetByID(ctx, giveawayID)
	if err != nil {
		return nil, nil, err
	}

	// Check admission rules before talking to the provider so a doomed
	// purchase never leaves an intent without pending entries behind it.
	// AdmitPurchased re-checks the same rules atomically.
	if !giveaway.AcceptingEntries(time.Now()) {
		return nil, nil, domainErrors.ErrNotAcceptingEntries
	}
	if giveaway.MaxEntries != nil {
		total, err := u.entries.CountEntries(ctx, giveawayID)
		if err != nil {
			return nil, nil, err
		}
		if total+quantity > *giveaway.MaxEntries {
			return nil, nil, domainErrors.ErrCapacityExceeded
		}
	}
	summary, err := u.entries.UserSummary(ctx, giveawayID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !summary.FreeEntryUsed {
		return nil, nil, domainErrors.ErrFreeEntryRequired
	}

	price := giveaway.AdditionalEntryPrice
	amount := price.Mul(decimal.NewFromInt(int64(quantity)))

	intent, err := u.payments.CreateIntent(ctx, amount, PurchaseCurrency, uuid.NewString())
	if err != nil {
		return nil, nil, err
	}

	entries, err := u.entries.AdmitPurchased(ctx, giveawayID, userID, quantity, price, intent.Reference)
	if err != nil {
		return nil, nil, err
	}

	return intent, entries, nil
}

// Status reports the caller's standing within a giveaway.
func (u *AdmissionUseCase) Status(ctx context.Context, giveawayID, userID int64) (*model.EntrySummary, error) {
	if _, err := u.giveaways.GetByID(ctx, giveawayID); err != nil {
		return nil, err
	}
	return u.entries.UserSummary(ctx, giveawayID, userID)
}

// ConfirmPayment settles a successful payment, entering its pending entries.
// Returns the number of entries confirmed; zero when already settled.
func (u *AdmissionUseCase) ConfirmPayment(ctx context.Context, reference string) (int, error) {
	return u.entries.ConfirmPayment(ctx, reference)
}

// CancelPayment removes pending entries of a failed payment.
func (u *AdmissionUseCase) CancelPayment(ctx context.Context, reference string) (int, error) {
	return u.entries.CancelPayment(ctx, reference)
}

// PendingPayments lists payment references awaiting reconciliation.
func (u *AdmissionUseCase) PendingPayments(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	return u.entries.PendingPaymentRefs(ctx, olderThan, limit)
}
