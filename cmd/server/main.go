package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"tally/internal/platform/config"
	"tally/internal/platform/httpserver"
	"tally/internal/platform/logger"
	platformmetrics "tally/internal/platform/metrics"
	"tally/internal/receipt"
	"tally/internal/receipt/handler"
	receiptmetrics "tally/internal/receipt/metrics"
	"tally/internal/receipt/service"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal receipt packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	store := receipt.NewMemoryStore()
	svc := service.New(store, receiptmetrics.New())
	h := handler.New(svc, log, platformmetrics.New())

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	h.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting tally", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
