package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/prizelab/giveawayd/internal/config"
	"github.com/prizelab/giveawayd/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.GiveawayRepository { return s.Giveaways() },
		func(s *Storage) repository.EntryRepository { return s.Entries() },
		func(s *Storage) repository.WinnerRepository { return s.Winners() },
		func(s *Storage) repository.LedgerRepository { return s.Ledger() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
