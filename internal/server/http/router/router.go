package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/config"
	pkgAuth "github.com/prizelab/giveawayd/internal/pkg/auth"
	"github.com/prizelab/giveawayd/internal/ratelimit"
	"github.com/prizelab/giveawayd/internal/server/http/handlers"
	"github.com/prizelab/giveawayd/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PlatformFacade, strategy pkgAuth.Strategy, limits ratelimit.Store, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	// Anonymous traffic is limited per client address; authenticated groups
	// install the limiter after AuthRequired so it keys on the user instead.
	rateLimit := middleware.RateLimit(limits, cfg.RateLimitPerMinute, logger)

	entryHandler := handlers.NewEntryHandler(facade)
	drawHandler := handlers.NewDrawHandler(facade)
	pointsHandler := handlers.NewPointsHandler(facade)
	giveawayHandler := handlers.NewGiveawayHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, logger)

	api := engine.Group("/api")

	public := api.Group("")
	public.Use(rateLimit)
	public.GET("/giveaways", giveawayHandler.List)
	public.GET("/giveaways/:id", giveawayHandler.Get)
	public.GET("/giveaways/:id/winners", drawHandler.List)
	public.POST("/payments/webhook", webhookHandler.Handle)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(strategy), rateLimit)
	authed.POST("/giveaways/:id/enter", entryHandler.EnterFree)
	authed.GET("/giveaways/:id/enter", entryHandler.Status)
	authed.POST("/giveaways/:id/purchase-entry", entryHandler.Purchase)
	authed.GET("/points/balance", pointsHandler.Balance)
	authed.GET("/points/transactions", pointsHandler.Transactions)
	authed.POST("/points/spend", pointsHandler.Spend)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(strategy), middleware.RoleRequired(pkgAuth.RoleAdmin), rateLimit)
	admin.POST("/giveaways", giveawayHandler.Create)
	admin.PATCH("/giveaways/:id/status", giveawayHandler.Transition)
	admin.POST("/giveaways/:id/draw", drawHandler.Draw)
	admin.POST("/points/grant", pointsHandler.Grant)

	return engine
}
