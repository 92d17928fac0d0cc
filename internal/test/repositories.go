package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/domain/repository"
)

// GiveawayRepositoryStub stores giveaways in-memory for tests.
type GiveawayRepositoryStub struct {
	Giveaways map[int64]*model.Giveaway
	Next      int64
	Err       error
}

// NewGiveawayRepositoryStub constructs stub repository with initialized maps.
func NewGiveawayRepositoryStub() *GiveawayRepositoryStub {
	return &GiveawayRepositoryStub{Giveaways: make(map[int64]*model.Giveaway), Next: 1}
}

// Create assigns an identifier and stores the giveaway.
func (s *GiveawayRepositoryStub) Create(ctx context.Context, giveaway *model.Giveaway) (*model.Giveaway, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Giveaways == nil {
		s.Giveaways = make(map[int64]*model.Giveaway)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *giveaway
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Giveaways[stored.ID] = &stored
	return &stored, nil
}

// GetByID fetches a stored giveaway or returns not found.
func (s *GiveawayRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Giveaway, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if giveaway, ok := s.Giveaways[id]; ok {
		copied := *giveaway
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus mutates the stored giveaway status.
func (s *GiveawayRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.GiveawayStatus) error {
	if s.Err != nil {
		return s.Err
	}
	giveaway, ok := s.Giveaways[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	giveaway.Status = status
	return nil
}

// List returns all stored giveaways.
func (s *GiveawayRepositoryStub) List(ctx context.Context) ([]model.Giveaway, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Giveaway, 0, len(s.Giveaways))
	for _, giveaway := range s.Giveaways {
		result = append(result, *giveaway)
	}
	return result, nil
}

// EntryRepositoryStub simulates the admission transaction in-memory,
// enforcing the same invariants as the storage layer.
type EntryRepositoryStub struct {
	mu        sync.Mutex
	Giveaways *GiveawayRepositoryStub
	Entries   []model.Entry
	Next      int64
	Err       error

	AdmitFreeFn      func(context.Context, int64, int64) (*model.Entry, error)
	AdmitPurchasedFn func(context.Context, int64, int64, int, decimal.Decimal, string) ([]model.Entry, error)
}

// NewEntryRepositoryStub couples the entry stub to a giveaway stub so
// admission checks can consult giveaway state.
func NewEntryRepositoryStub(giveaways *GiveawayRepositoryStub) *EntryRepositoryStub {
	return &EntryRepositoryStub{Giveaways: giveaways, Next: 1}
}

func (s *EntryRepositoryStub) admissionChecks(giveawayID, userID int64, quantity int, purchase bool) (*model.Giveaway, error) {
	giveaway, ok := s.Giveaways.Giveaways[giveawayID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !giveaway.AcceptingEntries(time.Now()) {
		return nil, domainErrors.ErrNotAcceptingEntries
	}
	total := 0
	freeUsed := false
	for _, entry := range s.Entries {
		if entry.GiveawayID != giveawayID {
			continue
		}
		total++
		if entry.UserID == userID && entry.Type == model.EntryTypeFree {
			freeUsed = true
		}
	}
	if giveaway.MaxEntries != nil && total+quantity > *giveaway.MaxEntries {
		return nil, domainErrors.ErrCapacityExceeded
	}
	if purchase && !freeUsed {
		return nil, domainErrors.ErrFreeEntryRequired
	}
	if !purchase && freeUsed {
		return nil, domainErrors.ErrFreeEntryAlreadyUsed
	}
	return giveaway, nil
}

func (s *EntryRepositoryStub) nextNumber(giveawayID int64) int {
	max := 0
	for _, entry := range s.Entries {
		if entry.GiveawayID == giveawayID && entry.EntryNumber > max {
			max = entry.EntryNumber
		}
	}
	return max + 1
}

// AdmitFree registers the complimentary entry for the user.
func (s *EntryRepositoryStub) AdmitFree(ctx context.Context, giveawayID, userID int64) (*model.Entry, error) {
	if s.AdmitFreeFn != nil {
		return s.AdmitFreeFn(ctx, giveawayID, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.admissionChecks(giveawayID, userID, 1, false); err != nil {
		return nil, err
	}
	entry := model.Entry{
		ID:          s.Next,
		GiveawayID:  giveawayID,
		UserID:      userID,
		EntryNumber: s.nextNumber(giveawayID),
		Type:        model.EntryTypeFree,
		Status:      model.EntryStatusEntered,
		CreatedAt:   time.Now(),
	}
	s.Next++
	s.Entries = append(s.Entries, entry)
	return &entry, nil
}

// AdmitPurchased registers quantity pending entries bound to a payment reference.
func (s *EntryRepositoryStub) AdmitPurchased(ctx context.Context, giveawayID, userID int64, quantity int, price decimal.Decimal, paymentRef string) ([]model.Entry, error) {
	if s.AdmitPurchasedFn != nil {
		return s.AdmitPurchasedFn(ctx, giveawayID, userID, quantity, price, paymentRef)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.admissionChecks(giveawayID, userID, quantity, true); err != nil {
		return nil, err
	}
	number := s.nextNumber(giveawayID)
	created := make([]model.Entry, 0, quantity)
	for i := 0; i < quantity; i++ {
		entryPrice := price
		ref := paymentRef
		entry := model.Entry{
			ID:            s.Next,
			GiveawayID:    giveawayID,
			UserID:        userID,
			EntryNumber:   number + i,
			Type:          model.EntryTypePurchased,
			PurchasePrice: &entryPrice,
			Status:        model.EntryStatusPending,
			PaymentRef:    &ref,
			CreatedAt:     time.Now(),
		}
		s.Next++
		s.Entries = append(s.Entries, entry)
		created = append(created, entry)
	}
	return created, nil
}

// UserSummary aggregates the user's entries in the giveaway.
func (s *EntryRepositoryStub) UserSummary(ctx context.Context, giveawayID, userID int64) (*model.EntrySummary, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &model.EntrySummary{}
	for _, entry := range s.Entries {
		if entry.GiveawayID != giveawayID || entry.UserID != userID {
			continue
		}
		summary.TotalEntries++
		if entry.Type == model.EntryTypeFree {
			summary.FreeEntryUsed = true
		}
		if entry.Status == model.EntryStatusPending {
			summary.PendingEntries++
		}
	}
	return summary, nil
}

// CountEntries reports the giveaway-wide entry count.
func (s *EntryRepositoryStub) CountEntries(ctx context.Context, giveawayID int64) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, entry := range s.Entries {
		if entry.GiveawayID == giveawayID {
			total++
		}
	}
	return total, nil
}

// ConfirmPayment enters all pending entries with the reference.
func (s *EntryRepositoryStub) ConfirmPayment(ctx context.Context, paymentRef string) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	confirmed := 0
	for i := range s.Entries {
		entry := &s.Entries[i]
		if entry.Status == model.EntryStatusPending && entry.PaymentRef != nil && *entry.PaymentRef == paymentRef {
			entry.Status = model.EntryStatusEntered
			confirmed++
		}
	}
	return confirmed, nil
}

// CancelPayment removes pending entries with the reference.
func (s *EntryRepositoryStub) CancelPayment(ctx context.Context, paymentRef string) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.Entries[:0]
	cancelled := 0
	for _, entry := range s.Entries {
		if entry.Status == model.EntryStatusPending && entry.PaymentRef != nil && *entry.PaymentRef == paymentRef {
			cancelled++
			continue
		}
		kept = append(kept, entry)
	}
	s.Entries = kept
	return cancelled, nil
}

// PendingPaymentRefs lists distinct references of stale pending entries.
func (s *EntryRepositoryStub) PendingPaymentRefs(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	seen := map[string]bool{}
	var refs []string
	for _, entry := range s.Entries {
		if entry.Status != model.EntryStatusPending || entry.PaymentRef == nil {
			continue
		}
		if entry.CreatedAt.After(cutoff) {
			continue
		}
		if seen[*entry.PaymentRef] {
			continue
		}
		seen[*entry.PaymentRef] = true
		refs = append(refs, *entry.PaymentRef)
		if limit > 0 && len(refs) == limit {
			break
		}
	}
	return refs, nil
}

// WinnerRepositoryStub simulates the draw transaction in-memory.
type WinnerRepositoryStub struct {
	Giveaways *GiveawayRepositoryStub
	Entries   *EntryRepositoryStub
	Winners   []model.Winner
	Next      int64
	Err       error

	DrawFn func(context.Context, int64, repository.PickFunc) ([]model.Winner, error)
}

// NewWinnerRepositoryStub couples the winner stub to giveaway and entry stubs.
func NewWinnerRepositoryStub(giveaways *GiveawayRepositoryStub, entries *EntryRepositoryStub) *WinnerRepositoryStub {
	return &WinnerRepositoryStub{Giveaways: giveaways, Entries: entries, Next: 1}
}

// Draw runs eligibility checks and persists picked winners, all-or-nothing.
func (s *WinnerRepositoryStub) Draw(ctx context.Context, giveawayID int64, pick repository.PickFunc) ([]model.Winner, error) {
	if s.DrawFn != nil {
		return s.DrawFn(ctx, giveawayID, pick)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	giveaway, ok := s.Giveaways.Giveaways[giveawayID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	now := time.Now()
	if giveaway.Status != model.GiveawayStatusActive && giveaway.Status != model.GiveawayStatusEnded {
		return nil, domainErrors.ErrGiveawayNotActive
	}
	if now.Before(giveaway.EndDate) {
		return nil, domainErrors.ErrGiveawayNotEnded
	}
	for _, winner := range s.Winners {
		if winner.GiveawayID == giveawayID {
			return nil, domainErrors.ErrWinnersAlreadyDrawn
		}
	}
	var eligible []model.Entry
	for _, entry := range s.Entries.Entries {
		if entry.GiveawayID == giveawayID && entry.Status == model.EntryStatusEntered {
			eligible = append(eligible, entry)
		}
	}
	if len(eligible) == 0 {
		return nil, domainErrors.ErrNoEntries
	}
	picked, err := pick(eligible)
	if err != nil {
		return nil, err
	}
	created := make([]model.Winner, 0, len(picked))
	for _, entry := range picked {
		winner := model.Winner{
			ID:          s.Next,
			GiveawayID:  giveawayID,
			UserID:      entry.UserID,
			EntryID:     entry.ID,
			EntryNumber: entry.EntryNumber,
			SelectedAt:  now,
			ClaimStatus: model.PrizeClaimStatusUnclaimed,
		}
		s.Next++
		created = append(created, winner)
	}
	s.Winners = append(s.Winners, created...)
	giveaway.Status = model.GiveawayStatusCompleted
	return created, nil
}

// ListByGiveaway returns winners recorded for the giveaway.
func (s *WinnerRepositoryStub) ListByGiveaway(ctx context.Context, giveawayID int64) ([]model.Winner, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Winner
	for _, winner := range s.Winners {
		if winner.GiveawayID == giveawayID {
			result = append(result, winner)
		}
	}
	return result, nil
}

// LedgerRepositoryStub keeps an in-memory append-only transaction log with
// the same balance invariant as the storage layer.
type LedgerRepositoryStub struct {
	mu           sync.Mutex
	Transactions []model.PointsTransaction
	Next         int64
	Err          error
}

// Append records a transaction, rejecting overdrawing spends.
func (s *LedgerRepositoryStub) Append(ctx context.Context, userID int64, txType model.TransactionType, amount int64, description string) (*model.PointsTransaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount < 0 && s.balanceLocked(userID)+amount < 0 {
		return nil, domainErrors.ErrInsufficientBalance
	}
	if s.Next == 0 {
		s.Next = 1
	}
	tx := model.PointsTransaction{
		ID:          s.Next,
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	}
	s.Next++
	s.Transactions = append(s.Transactions, tx)
	return &tx, nil
}

func (s *LedgerRepositoryStub) balanceLocked(userID int64) int64 {
	var sum int64
	for _, tx := range s.Transactions {
		if tx.UserID == userID {
			sum += tx.Amount
		}
	}
	return sum
}

// Balance sums the stored log for the user.
func (s *LedgerRepositoryStub) Balance(ctx context.Context, userID int64) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceLocked(userID), nil
}

// ListByUser returns the user's transactions.
func (s *LedgerRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.PointsTransaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.PointsTransaction
	for _, tx := range s.Transactions {
		if tx.UserID == userID {
			result = append(result, tx)
		}
	}
	return result, nil
}

// RebuildBalance recomputes the balance from the log.
func (s *LedgerRepositoryStub) RebuildBalance(ctx context.Context, userID int64) (int64, error) {
	return s.Balance(ctx, userID)
}
