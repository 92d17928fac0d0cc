package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/prizelab/giveawayd/internal/domain/errors"
	"github.com/prizelab/giveawayd/internal/domain/model"
	"github.com/prizelab/giveawayd/internal/domain/repository"
)

// GiveawayUseCase handles giveaway lifecycle management.
type GiveawayUseCase struct {
	giveaways repository.GiveawayRepository
}

// NewGiveawayUseCase constructs GiveawayUseCase.
func NewGiveawayUseCase(giveaways repository.GiveawayRepository) *GiveawayUseCase {
	return &GiveawayUseCase{giveaways: giveaways}
}

// Create validates and persists a new giveaway in draft state.
func (u *GiveawayUseCase) Create(ctx context.Context, giveaway *model.Giveaway) (*model.Giveaway, error) {
	giveaway.Title = strings.TrimSpace(giveaway.Title)
	if giveaway.Title == "" {
		return nil, domainErrors.ErrInvalidGiveaway
	}
	if !giveaway.EndDate.After(giveaway.StartDate) {
		return nil, domainErrors.ErrInvalidGiveaway
	}
	if giveaway.MaxEntries != nil && *giveaway.MaxEntries < 1 {
		return nil, domainErrors.ErrInvalidGiveaway
	}
	if giveaway.AdditionalEntryPrice.IsNegative() {
		return nil, domainErrors.ErrInvalidGiveaway
	}
	giveaway.Status = model.GiveawayStatusDraft
	return u.giveaways.Create(ctx, giveaway)
}

// Transition moves a giveaway to a new status when the transition is allowed.
func (u *GiveawayUseCase) Transition(ctx context.Context, id int64, to model.GiveawayStatus) (*model.Giveaway, error) {
	giveaway, err := u.giveaways.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(giveaway.Status, to) {
		return nil, domainErrors.ErrInvalidTransition
	}
	if err := u.giveaways.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	giveaway.Status = to
	return giveaway, nil
}

// Get fetches a giveaway by identifier.
func (u *GiveawayUseCase) Get(ctx context.Context, id int64) (*model.Giveaway, error) {
	return u.giveaways.GetByID(ctx, id)
}

// List returns all giveaways, newest first.
func (u *GiveawayUseCase) List(ctx context.Context) ([]model.Giveaway, error) {
	return u.giveaways.List(ctx)
}
