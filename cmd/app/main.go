package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stripe/stripe-go/v82/client"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	httpx "storefront/internal/http"
	"storefront/internal/http/handlers"
	"storefront/internal/repo"
	"storefront/pkg/config"
	"storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New("storefront", cfg.Common.LogLevel)

	ctxDB, cancelDB := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDB()

	db, err := pgxpool.New(ctxDB, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("pg connect failed")
	}
	defer db.Close()

	if err := repo.Migrate(ctxDB, db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	users := &repo.UsersPG{DB: db}
	products := &repo.ProductsPG{DB: db}
	orders := &repo.OrdersPG{DB: db}

	authSvc := &auth.Service{
		Users:  users,
		Tokens: &auth.TokenIssuer{Secret: []byte(cfg.JWT.Secret), TTL: cfg.JWT.TTL},
		Log:    log,
	}

	provider := &checkout.StripeProvider{
		API:           client.New(cfg.Stripe.SecretKey, nil),
		ClientBaseURL: cfg.Client.BaseURL,
	}
	checkoutSvc := &checkout.Service{
		Products: products,
		Orders:   orders,
		Provider: provider,
		Log:      log,
	}

	syncer := &catalog.Syncer{
		Client:     &http.Client{Timeout: 15 * time.Second},
		BaseURL:    cfg.Catalog.BaseURL,
		Categories: cfg.Catalog.Categories,
		Products:   products,
		Log:        log,
	}

	// Startup tasks: fill the catalog once if it is empty and seed the
	// configured admin. Neither failure prevents the server from starting.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	if n, err := products.Count(startCtx); err != nil {
		log.Warn().Err(err).Msg("catalog check failed")
	} else if n == 0 {
		if err := syncer.Sync(startCtx); err != nil {
			log.Warn().Err(err).Msg("catalog sync failed")
		}
	}
	authSvc.SeedAdmin(startCtx, cfg.Admin.Email, cfg.Admin.Password)
	cancelStart()

	authH := &handlers.Auth{Svc: authSvc}
	checkoutH := &handlers.Checkout{Svc: checkoutSvc}
	productsH := &handlers.Products{List: products.List}
	ordersH := &handlers.Orders{ListByEmail: orders.ListByEmail, GetUser: authSvc.Me}
	webhookH := &handlers.Webhook{
		Secret:    cfg.Stripe.WebhookSecret,
		Reconcile: checkoutSvc.Reconcile,
		Log:       log,
	}

	router := httpx.NewRouter(&httpx.Handlers{
		Health:                handlers.Health,
		Register:              authH.Register,
		Login:                 authH.Login,
		Logout:                authH.Logout,
		Me:                    authH.Me,
		ListProducts:          productsH.ServeHTTP,
		CreateCheckoutSession: checkoutH.CreateSession,
		SessionStatus:         checkoutH.SessionStatus,
		Webhook:               webhookH.ServeHTTP,
		ListOrders:            ordersH.ServeHTTP,
		RequireAuth:           handlers.RequireAuth(authSvc.Tokens.Verify),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}
