package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/conveyor/internal/catalog"
	"github.com/Simplici0/conveyor/internal/config"
	"github.com/Simplici0/conveyor/internal/configurator"
	"github.com/Simplici0/conveyor/internal/db"
	"github.com/Simplici0/conveyor/internal/logger"
	"github.com/Simplici0/conveyor/internal/migrations"
	"github.com/Simplici0/conveyor/internal/seed"
	"github.com/Simplici0/conveyor/internal/store"
)

type server struct {
	db  *sql.DB
	svc *configurator.Service
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)
	log := logger.Named("server")

	params, err := cfg.Parameters()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load engineering parameters")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, cfg.MigrationsDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}
	if err := seedCatalog(database, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to seed catalog")
	}

	srv := &server{
		db:  database,
		svc: configurator.New(catalog.NewSQLite(database), store.New(database), params),
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("env", cfg.Env).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedCatalog loads CATALOG_FILE when set, and the bundled catalog in
// development.
func seedCatalog(database *sql.DB, cfg config.Config) error {
	var (
		cat seed.Catalog
		err error
	)
	switch {
	case cfg.CatalogFile != "":
		cat, err = seed.LoadCatalog(cfg.CatalogFile)
	case cfg.IsDev():
		cat, err = seed.DefaultCatalog()
	default:
		return nil
	}
	if err != nil {
		return err
	}

	stats, err := seed.Run(database, cat)
	if err != nil {
		return err
	}
	logger.Named("seed").Info().Int("inserts", stats.Inserts).Int("updates", stats.Updates).Msg("catalog seeded")
	return nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Get("/parameters", s.handleParameters)
		r.Get("/gearmotors/candidates", s.handleCandidates)
		r.Route("/configurations", func(r chi.Router) {
			r.Get("/", s.handleListConfigurations)
			r.Post("/", s.handleSaveConfiguration)
			r.Get("/{id}", s.handleGetConfiguration)
			r.Put("/{id}", s.handleUpdateConfiguration)
		})
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRequest(r.Context(), middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.C(ctx).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
