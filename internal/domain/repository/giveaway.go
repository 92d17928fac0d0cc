package repository

import (
	"context"

	"github.com/prizelab/giveawayd/internal/domain/model"
)

// GiveawayRepository describes persistence operations for giveaways.
type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *model.Giveaway) (*model.Giveaway, error)
	GetByID(ctx context.Context, id int64) (*model.Giveaway, error)
	UpdateStatus(ctx context.Context, id int64, status model.GiveawayStatus) error
	List(ctx context.Context) ([]model.Giveaway, error)
}
