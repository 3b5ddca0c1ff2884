package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rkmehedi/nexyn-pets-server/internal/adapter/repo"
	"github.com/rkmehedi/nexyn-pets-server/internal/adoption"
	"github.com/rkmehedi/nexyn-pets-server/internal/auth"
	"github.com/rkmehedi/nexyn-pets-server/internal/http/handlers"
	httpapi "github.com/rkmehedi/nexyn-pets-server/internal/http/httpapi"
	"github.com/rkmehedi/nexyn-pets-server/internal/infra"
	"github.com/rkmehedi/nexyn-pets-server/internal/ledger"
	"github.com/rkmehedi/nexyn-pets-server/internal/providers/stripegw"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	users := repo.NewUserRepository(dbpool)
	pets := repo.NewPetRepository(dbpool)
	campaigns := repo.NewCampaignRepository(dbpool)
	payments := repo.NewPaymentRepository(dbpool)
	adoptions := repo.NewAdoptionRepository(dbpool)
	stats := repo.NewStatsRepository(dbpool)

	policy := auth.NewPolicy(users)
	engine := ledger.NewEngine(campaigns, payments, policy, logger)
	workflow := adoption.NewWorkflow(adoptions, pets, policy, logger)
	gateway := stripegw.NewClient(stripegw.Options{
		SecretKey: cfg.StripeSecretKey,
		BaseURL:   cfg.StripeBaseURL,
		Logger:    logger,
	})

	app := &handlers.App{
		Users:     users,
		Pets:      pets,
		Campaigns: campaigns,
		Payments:  payments,
		Adoptions: adoptions,
		Stats:     stats,
		Ledger:    engine,
		Adoption:  workflow,
		Policy:    policy,
		Gateway:   gateway,
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
