package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/prizelab/giveawayd/internal/adapter/payment"
	"github.com/prizelab/giveawayd/internal/app"
	"github.com/prizelab/giveawayd/internal/config"
	"github.com/prizelab/giveawayd/internal/domain/repository"
	"github.com/prizelab/giveawayd/internal/storage/postgres"
	"github.com/prizelab/giveawayd/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:             ":0",
		DatabaseURI:            "postgres://stub",
		PaymentProviderAddress: "http://localhost",
		AuthSecret:             "secret",
		RateLimitPerMinute:     100,
		ReconcilePollInterval:  time.Millisecond,
		PendingPaymentAge:      time.Minute,
		ReconcileBatchSize:     1,
		WorkerPoolSize:         1,
		ShutdownTimeout:        time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	giveawayRepo := test.NewGiveawayRepositoryStub()
	entryRepo := test.NewEntryRepositoryStub(giveawayRepo)
	winnerRepo := test.NewWinnerRepositoryStub(giveawayRepo, entryRepo)
	ledgerRepo := &test.LedgerRepositoryStub{}
	paymentStub := test.PaymentProviderStub{}

	var facade *app.GiveawayFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.GiveawayRepository(giveawayRepo)),
			fx.Replace(repository.EntryRepository(entryRepo)),
			fx.Replace(repository.WinnerRepository(winnerRepo)),
			fx.Replace(repository.LedgerRepository(ledgerRepo)),
			fx.Replace(payment.Client(paymentStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected giveaway facade instance")
	}
}
