package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/test"
)

func validGiveaway() *model.Giveaway {
	return &model.Giveaway{
		Title:                "spring drop",
		StartDate:            time.Now(),
		EndDate:              time.Now().Add(24 * time.Hour),
		AdditionalEntryPrice: decimal.NewFromInt(2),
	}
}

func TestCreateGiveaway(t *testing.T) {
	uc := NewGiveawayUseCase(test.NewGiveawayRepositoryStub())

	created, err := uc.Create(context.Background(), validGiveaway())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned identifier")
	}
	if created.Status != model.GiveawayStatusDraft {
		t.Errorf("new giveaway should be draft, got %s", created.Status)
	}
}

func TestCreateGiveawayValidation(t *testing.T) {
	uc := NewGiveawayUseCase(test.NewGiveawayRepositoryStub())

	tests := []struct {
		name   string
		mutate func(*model.Giveaway)
	}{
		{name: "empty title", mutate: func(g *model.Giveaway) { g.Title = "   " }},
		{name: "end before start", mutate: func(g *model.Giveaway) { g.EndDate = g.StartDate.Add(-time.Hour) }},
		{name: "end equals start", mutate: func(g *model.Giveaway) { g.EndDate = g.StartDate }},
		{name: "zero max entries", mutate: func(g *model.Giveaway) { zero := 0; g.MaxEntries = &zero }},
		{name: "negative price", mutate: func(g *model.Giveaway) { g.AdditionalEntryPrice = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			giveaway := validGiveaway()
			tt.mutate(giveaway)
			if _, err := uc.Create(context.Background(), giveaway); !errors.Is(err, domainErrors.ErrInvalidGiveaway) {
				t.Errorf("expected ErrInvalidGiveaway, got %v", err)
			}
		})
	}
}

func TestCreateGiveawayForcesDraft(t *testing.T) {
	uc := NewGiveawayUseCase(test.NewGiveawayRepositoryStub())

	giveaway := validGiveaway()
	giveaway.Status = model.GiveawayStatusActive
	created, err := uc.Create(context.Background(), giveaway)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != model.GiveawayStatusDraft {
		t.Errorf("requested status must be ignored, got %s", created.Status)
	}
}

func TestTransition(t *testing.T) {
	repo := test.NewGiveawayRepositoryStub()
	uc := NewGiveawayUseCase(repo)

	created, err := uc.Create(context.Background(), validGiveaway())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := uc.Transition(context.Background(), created.ID, model.GiveawayStatusActive)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.Status != model.GiveawayStatusActive {
		t.Errorf("expected active status, got %s", updated.Status)
	}
	if repo.Giveaways[created.ID].Status != model.GiveawayStatusActive {
		t.Errorf("transition not persisted, stored status %s", repo.Giveaways[created.ID].Status)
	}

	if _, err := uc.Transition(context.Background(), created.ID, model.GiveawayStatusDraft); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Errorf("active to draft should be rejected, got %v", err)
	}
	if _, err := uc.Transition(context.Background(), 999, model.GiveawayStatusActive); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAndList(t *testing.T) {
	uc := NewGiveawayUseCase(test.NewGiveawayRepositoryStub())

	created, err := uc.Create(context.Background(), validGiveaway())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	fetched, err := uc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if fetched.Title != created.Title {
		t.Errorf("expected title %q, got %q", created.Title, fetched.Title)
	}

	if _, err := uc.Get(context.Background(), 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	listed, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("expected 1 giveaway, got %d", len(listed))
	}
}
