package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"ad-matrix-engine/internal/api"
	"ad-matrix-engine/internal/config"
	"ad-matrix-engine/internal/conventions"
)

func Run(cfg config.Config) {
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conventions registry
	reg := conventions.NewRegistry()
	if err := reg.LoadFile(cfg.Conventions.Path); err != nil {
		// an absent or broken file only disables named previews
		log.Warn().Err(err).Str("path", cfg.Conventions.Path).Msg("conventions not loaded")
	}
	if cfg.Conventions.Watch {
		go conventions.WatchAndRefresh(rootCtx, reg, cfg.Conventions.Path, cfg.Backoff())
	}

	// HTTP
	h := api.NewPreviewHandler(reg, cfg.Limits.MaxTotalAds)
	r := api.Router(h)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Server goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	// Wait for signal
	waitForSignal()
	log.Info().Msg("shutdown...")

	// Graceful shutdown
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	cancel() // stop background goroutines
	_ = srv.Shutdown(shCtx)
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
