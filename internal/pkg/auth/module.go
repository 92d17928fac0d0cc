package auth

import (
	"github.com/prizelab/giveawayd/internal/config"
	"go.uber.org/fx"
)

// Module provides token verification primitives via fx.
var Module = fx.Provide(newTokenStrategy)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.AuthSecret, Options{})
}
