// Package main is the entry point for the scheduling engine's API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tolga/resident-scheduler/internal/config"
	"github.com/tolga/resident-scheduler/internal/engine"
	"github.com/tolga/resident-scheduler/internal/handler"
	"github.com/tolga/resident-scheduler/internal/storepg"
	"github.com/tolga/resident-scheduler/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg := config.Load()

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := storepg.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := storepg.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	defer func() {
		if err := storepg.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database connection")
		}
	}()
	log.Info().Msg("connected to database")

	pg := storepg.New(db, log.Logger)
	src := store.Sources{
		Residents:        pg,
		Requirements:     pg,
		Completions:      pg,
		VacationRequests: pg,
		Cohorts:          pg,
		Config:           pg,
	}

	eng := engine.New(src, pg, log.Logger)

	solveHandler := handler.NewSolveHandler(eng, pg)
	rolloverHandler := handler.NewRolloverHandler(src, pg)
	exportHandler := handler.NewExportHandler(pg, pg, pg, eng.Catalogue())

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:3001"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		handler.RegisterSolveRoutes(r, solveHandler)
		handler.RegisterRolloverRoutes(r, rolloverHandler)
		handler.RegisterExportRoutes(r, exportHandler)

		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message":"resident scheduler API v1"}`))
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
