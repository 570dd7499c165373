package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/config"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/infra"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/notifier"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/router"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// One-time import of the JSON files the old desktop build kept on disk.
	if err := infra.ImportLegacyDataIfEmpty(db, cfg.AssetsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to import legacy data")
	}

	tarifas, err := infra.LoadTarifas(cfg.AssetsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load payroll rates")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Websocket hub plus the Redis subscription that feeds it, so every
	// server process rebroadcasts screen updates to its own clients.
	hub := notifier.NewHub()
	go hub.Run()
	notif := notifier.New(rdb, hub)
	go notif.Escuchar(ctx)

	// Worker handlers are wired here (composition root) so the pool has
	// full access to the infrastructure.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	asistenciaRepo := repository.NewAsistenciaRepository(db)
	nominaSvc := service.NewNominaService(asistenciaRepo, tarifas)

	workerHandlers := &worker.WorkerHandlers{
		Nomina: worker.NewNominaWorker(nominaSvc, dispatcher, cfg.PDFStoragePath),
		Email:  worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, hub, dispatcher, tarifas)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("El Puestito backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
