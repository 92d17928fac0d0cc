package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/prizelab/giveawayd/internal/config"
	"github.com/prizelab/giveawayd/internal/usecase"
)

// Module exposes payment client implementation to fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(func(c Client) usecase.PaymentProvider { return c }),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.PaymentProviderAddress, p.Logger)
}
