package di

import (
	"go.uber.org/fx"

	"github.com/prizelab/giveawayd/internal/adapter/payment"
	"github.com/prizelab/giveawayd/internal/app"
	"github.com/prizelab/giveawayd/internal/config"
	"github.com/prizelab/giveawayd/internal/logger"
	"github.com/prizelab/giveawayd/internal/pkg/auth"
	"github.com/prizelab/giveawayd/internal/ratelimit"
	"github.com/prizelab/giveawayd/internal/server/http/router"
	"github.com/prizelab/giveawayd/internal/storage/postgres"
	"github.com/prizelab/giveawayd/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		usecase.Module,
		ratelimit.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
