package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"deckrush/internal/config"
	"deckrush/internal/events"
	"deckrush/internal/history"
	"deckrush/internal/network"
	"deckrush/internal/services/cluster"
	"deckrush/internal/session"
)

func serveCommand(configs []string) error {
	cfg, err := config.Process(configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.Logger
	mux := http.NewServeMux()
	health := cluster.NewHealthAggregator()

	opts := session.Options{
		GameDuration: cfg.Game.Duration,
		PlayInterval: cfg.Game.PlayInterval,
		ResetDelay:   cfg.Game.ResetDelay,
		ShopSize:     cfg.Game.ShopSize,
		Logger:       logger,
	}

	var historyDone chan struct{}
	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		historyDone = make(chan struct{})
		go func() {
			store.Run(ctx)
			close(historyDone)
		}()

		opts.Results = store
		health.AddCheck("history", store.Check)
		mux.HandleFunc("/results", store.Handler())
		log.Info().Str("path", cfg.History.Path).Msg("recording finished games")
	}

	if cfg.NATS.URL != "" {
		publisher, err := events.Connect(cfg.NATS.URL, cfg.NATS.Prefix, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()

		opts.Publisher = publisher
		health.AddCheck("nats", publisher.Check)
	}

	game, err := session.NewGameHandler(opts)
	if err != nil {
		return err
	}
	defer game.Shutdown()

	server := network.NewServer(game, cfg.Server.AllowOrigins, logger)
	go server.Hub().Run(ctx)

	mux.Handle("/ws", server)
	mux.HandleFunc("/health", health.Handler())
	mux.HandleFunc("/state", game.StateHandler())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler: mux,
	}

	if cfg.Consul.Enabled {
		registrar, err := cluster.RegisterService(cfg.Consul.Addr, cluster.Registration{
			ServiceName: cfg.Consul.ServiceName,
			Address:     cfg.Consul.Address,
			Port:        cfg.Server.Port,
			Tags:        []string{"websocket"},
		}, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := registrar.Deregister(); err != nil {
				log.Warn().Err(err).Msg("consul deregistration failed")
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("listening for players on /ws")
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			cancel()
			return fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown failed")
	}

	// Stop the clock first so no game can end after the history writer drains.
	game.Shutdown()
	if historyDone != nil {
		<-historyDone
	}
	return nil
}
