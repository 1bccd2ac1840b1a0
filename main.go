package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Edmundtutu/foody-sub002/configs"
	"github.com/Edmundtutu/foody-sub002/events"
	"github.com/Edmundtutu/foody-sub002/middlewares"
	"github.com/Edmundtutu/foody-sub002/routes"
	"github.com/Edmundtutu/foody-sub002/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := configs.LoadConfig()
	configs.SetupLogger(cfg)

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	db := configs.DB()
	if err := configs.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	if err := configs.SeedAdmin(db); err != nil {
		log.Fatal().Err(err).Msg("seed admin failed")
	}
	if err := configs.SeedLookups(db); err != nil {
		log.Fatal().Err(err).Msg("seed lookups failed")
	}

	// selection events
	var pub events.SelectionPublisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaSelectionPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaSelectionTopic))
		defer kp.Close()
		pub = kp
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaSelectionTopic).Msg("publishing selection events")
	}

	if err := utils.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("register validators")
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(), middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, db, cfg, pub)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
