package usecase

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/domain/repository"
	"github.com/prizelab/giveawayd/internal/test"
)

func newDrawFixture(t *testing.T, userIDs []int64) (*DrawUseCase, *test.GiveawayRepositoryStub, *test.WinnerRepositoryStub, *model.Giveaway) {
	t.Helper()
	giveaways := test.NewGiveawayRepositoryStub()
	entries := test.NewEntryRepositoryStub(giveaways)
	winners := test.NewWinnerRepositoryStub(giveaways, entries)

	created, err := giveaways.Create(context.Background(), &model.Giveaway{
		Title:     "ended drop",
		StartDate: time.Now().Add(-2 * time.Hour),
		EndDate:   time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("create giveaway: %v", err)
	}
	giveaways.Giveaways[created.ID].Status = model.GiveawayStatusEnded

	for i, userID := range userIDs {
		entries.Entries = append(entries.Entries, model.Entry{
			ID:          int64(i + 1),
			GiveawayID:  created.ID,
			UserID:      userID,
			EntryNumber: i + 1,
			Type:        model.EntryTypeFree,
			Status:      model.EntryStatusEntered,
		})
	}

	uc := NewDrawUseCaseWithSource(winners, rand.NewSource(42))
	return uc, giveaways, winners, created
}

func TestDrawSingleWinner(t *testing.T) {
	uc, giveaways, winnerRepo, giveaway := newDrawFixture(t, []int64{1, 2, 3})

	winners, err := uc.Draw(context.Background(), giveaway.ID, 1)
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if len(winners) != 1 {
		t.Fatalf("expected 1 winner, got %d", len(winners))
	}
	if winners[0].ClaimStatus != model.PrizeClaimStatusUnclaimed {
		t.Errorf("expected unclaimed prize, got %s", winners[0].ClaimStatus)
	}
	if giveaways.Giveaways[giveaway.ID].Status != model.GiveawayStatusCompleted {
		t.Errorf("draw should complete the giveaway, status %s", giveaways.Giveaways[giveaway.ID].Status)
	}
	if len(winnerRepo.Winners) != 1 {
		t.Errorf("expected 1 persisted winner, got %d", len(winnerRepo.Winners))
	}
}

func TestDrawMultipleWinnersDistinctUsers(t *testing.T) {
	uc, _, _, giveaway := newDrawFixture(t, []int64{1, 1, 1, 2, 2, 3, 4})

	winners, err := uc.Draw(context.Background(), giveaway.ID, 4)
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if len(winners) != 4 {
		t.Fatalf("expected 4 winners, got %d", len(winners))
	}
	seen := map[int64]bool{}
	for _, winner := range winners {
		if seen[winner.UserID] {
			t.Errorf("user %d won twice in one draw", winner.UserID)
		}
		seen[winner.UserID] = true
	}
}

func TestDrawFewerDistinctUsersThanRequested(t *testing.T) {
	uc, _, _, giveaway := newDrawFixture(t, []int64{1, 1, 2})

	winners, err := uc.Draw(context.Background(), giveaway.ID, 5)
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if len(winners) != 2 {
		t.Errorf("expected winners bounded by distinct users, got %d", len(winners))
	}
}

func TestDrawClampsRequestedCount(t *testing.T) {
	users := make([]int64, 20)
	for i := range users {
		users[i] = int64(i + 1)
	}
	uc, _, _, giveaway := newDrawFixture(t, users)

	winners, err := uc.Draw(context.Background(), giveaway.ID, 50)
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if len(winners) != MaxWinnersPerDraw {
		t.Errorf("expected %d winners, got %d", MaxWinnersPerDraw, len(winners))
	}

	uc2, _, _, giveaway2 := newDrawFixture(t, users)
	winners, err = uc2.Draw(context.Background(), giveaway2.ID, 0)
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if len(winners) != 1 {
		t.Errorf("non-positive request should draw 1 winner, got %d", len(winners))
	}
}

func TestDrawRejectsRedraw(t *testing.T) {
	uc, _, _, giveaway := newDrawFixture(t, []int64{1, 2})

	if _, err := uc.Draw(context.Background(), giveaway.ID, 1); err != nil {
		t.Fatalf("first draw returned error: %v", err)
	}
	if _, err := uc.Draw(context.Background(), giveaway.ID, 1); !errors.Is(err, domainErrors.ErrGiveawayNotActive) {
		t.Errorf("redraw on completed giveaway should fail, got %v", err)
	}
}

func TestDrawEligibility(t *testing.T) {
	uc, giveaways, _, giveaway := newDrawFixture(t, []int64{1})

	giveaways.Giveaways[giveaway.ID].Status = model.GiveawayStatusDraft
	if _, err := uc.Draw(context.Background(), giveaway.ID, 1); !errors.Is(err, domainErrors.ErrGiveawayNotActive) {
		t.Errorf("expected ErrGiveawayNotActive, got %v", err)
	}

	giveaways.Giveaways[giveaway.ID].Status = model.GiveawayStatusActive
	giveaways.Giveaways[giveaway.ID].EndDate = time.Now().Add(time.Hour)
	if _, err := uc.Draw(context.Background(), giveaway.ID, 1); !errors.Is(err, domainErrors.ErrGiveawayNotEnded) {
		t.Errorf("expected ErrGiveawayNotEnded, got %v", err)
	}

	if _, err := uc.Draw(context.Background(), 999, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDrawNoEligibleEntries(t *testing.T) {
	uc, _, winnerRepo, giveaway := newDrawFixture(t, nil)

	// Pending entries never win.
	ref := "pi-unsettled"
	winnerRepo.Entries.Entries = append(winnerRepo.Entries.Entries, model.Entry{
		ID:          1,
		GiveawayID:  giveaway.ID,
		UserID:      1,
		EntryNumber: 1,
		Type:        model.EntryTypePurchased,
		Status:      model.EntryStatusPending,
		PaymentRef:  &ref,
	})

	if _, err := uc.Draw(context.Background(), giveaway.ID, 1); !errors.Is(err, domainErrors.ErrNoEntries) {
		t.Errorf("expected ErrNoEntries, got %v", err)
	}
	if len(winnerRepo.Winners) != 0 {
		t.Errorf("failed draw must not persist winners, got %d", len(winnerRepo.Winners))
	}
}

func TestDrawPickErrorRollsBack(t *testing.T) {
	uc, giveaways, winnerRepo, giveaway := newDrawFixture(t, []int64{1, 2})
	pickErr := errors.New("pick failed")
	winnerRepo.DrawFn = func(ctx context.Context, giveawayID int64, pick repository.PickFunc) ([]model.Winner, error) {
		return nil, pickErr
	}

	if _, err := uc.Draw(context.Background(), giveaway.ID, 1); !errors.Is(err, pickErr) {
		t.Errorf("expected pick error, got %v", err)
	}
	if len(winnerRepo.Winners) != 0 {
		t.Errorf("interrupted draw must record zero winners, got %d", len(winnerRepo.Winners))
	}
	if giveaways.Giveaways[giveaway.ID].Status != model.GiveawayStatusEnded {
		t.Errorf("interrupted draw must leave the giveaway ended, got %s", giveaways.Giveaways[giveaway.ID].Status)
	}
}

func TestWinners(t *testing.T) {
	uc, _, _, giveaway := newDrawFixture(t, []int64{1, 2, 3})

	drawn, err := uc.Draw(context.Background(), giveaway.ID, 2)
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}

	listed, err := uc.Winners(context.Background(), giveaway.ID)
	if err != nil {
		t.Fatalf("Winners returned error: %v", err)
	}
	if len(listed) != len(drawn) {
		t.Errorf("expected %d winners, got %d", len(drawn), len(listed))
	}

	empty, err := uc.Winners(context.Background(), 999)
	if err != nil {
		t.Fatalf("Winners returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no winners for unknown giveaway, got %d", len(empty))
	}
}
