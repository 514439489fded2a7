package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/adapter/seed"
	"github.com/user/threat-log-analyzer/internal/delivery/http/handler"
	"github.com/user/threat-log-analyzer/internal/delivery/http/router"
	"github.com/user/threat-log-analyzer/pkg/config"
	"github.com/user/threat-log-analyzer/pkg/logger"
	"github.com/user/threat-log-analyzer/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogEncoding, cfg.AppLogFile)
	defer log.Sync()

	threats, err := seed.LoadThreatMapping(cfg.ThreatSeedFile)
	if err != nil {
		log.Fatal("could not load threat seed", zap.String("path", cfg.ThreatSeedFile), zap.Error(err))
	}
	log.Info("threat seed loaded", zap.String("path", cfg.ThreatSeedFile), zap.Int("threats", len(threats)))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router.New(handler.NewHandler(threats, log), m, reg, log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()
	log.Info("threat feed server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}
