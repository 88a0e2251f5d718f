package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cateringworks/lunchbot/internal/api"
	"github.com/cateringworks/lunchbot/internal/core/service"
	"github.com/cateringworks/lunchbot/internal/infrastructure/cards"
	"github.com/cateringworks/lunchbot/internal/infrastructure/config"
	"github.com/cateringworks/lunchbot/internal/infrastructure/connector"
	mongodb "github.com/cateringworks/lunchbot/internal/infrastructure/db/mongo"
	redisdb "github.com/cateringworks/lunchbot/internal/infrastructure/db/redis"
	"github.com/cateringworks/lunchbot/internal/infrastructure/menu"
	"github.com/cateringworks/lunchbot/internal/infrastructure/tokenprovider"
	"github.com/cateringworks/lunchbot/pkg/logger"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	log := logger.New(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") == "development",
	})

	cfg := config.Load(log)
	log = logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	orderRepo := mongodb.NewOrderRepository(db)
	if err := orderRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	stateStore := redisdb.NewStateStore(rdb, 0)
	cardStore := cards.NewStore(cfg.CardsDir)
	recognizer := menu.NewRecognizer(nil, nil)
	sender := connector.NewSender(cfg.ChannelServiceURL, cfg.AppID, "lunchbot", log)

	nominalProvider := tokenprovider.New(cfg.Token.ServiceURL, cfg.Token.NominalConnection, cfg.AppID, cfg.AppPassword, log)
	ssoProvider := tokenprovider.New(cfg.Token.ServiceURL, cfg.Token.SSOConnection, cfg.AppID, cfg.AppPassword, log)

	// --- Core services ---
	oauth := service.NewOAuthCoordinator(nominalProvider, ssoProvider, stateStore, log)

	var flow *service.OrderFlow
	if cfg.OrderFlowEnabled {
		flow = service.NewOrderFlow(orderRepo, recognizer, cardStore, log)
	}

	dispatcher := service.NewDispatcher(
		service.NewActionValidator(),
		oauth,
		flow,
		stateStore,
		cardStore,
		sender,
		cfg.WelcomeChannels,
		log,
	)

	// --- HTTP ---
	e := api.NewRouter(dispatcher, db, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Bool("order_flow", cfg.OrderFlowEnabled).
			Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
