package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ironfrontier/pkg/config"
	"ironfrontier/pkg/server"

	"github.com/sirupsen/logrus"
)

func configureLogging(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

func logStartupInfo(cfg *config.Config) {
	logrus.WithFields(logrus.Fields{
		"port":         cfg.ServerPort,
		"world_name":   cfg.WorldName,
		"world_seed":   cfg.WorldSeed,
		"region_count": cfg.RegionCount,
		"log_level":    cfg.LogLevel,
		"dev_mode":     cfg.EnableDevMode,
	}).Info("starting Iron Frontier generation server")
}

func setupShutdownHandling() (chan os.Signal, chan error) {
	sigChan := make(chan os.Signal, 1)
	errChan := make(chan error, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sigChan, errChan
}

func startServerAsync(srv *server.Server, errChan chan error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errChan <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()
}

func waitForShutdownSignal(sigChan chan os.Signal, errChan chan error) {
	select {
	case <-sigChan:
		logrus.Info("received shutdown signal")
	case err := <-errChan:
		logrus.WithError(err).Error("server error, initiating shutdown")
	}
}

func performGracefulShutdown(cfg *config.Config, srv *server.Server) {
	logrus.Info("shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during graceful shutdown")
		return
	}

	logrus.Info("server shutdown completed")
}

func loadAndConfigureSystem() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	configureLogging(cfg.LogLevel)
	return cfg
}

func main() {
	cfg := loadAndConfigureSystem()
	logStartupInfo(cfg)

	srv, err := server.NewServer(cfg, logrus.StandardLogger())
	if err != nil {
		logrus.WithError(err).Fatal("failed to build server")
	}

	sigChan, errChan := setupShutdownHandling()
	startServerAsync(srv, errChan)
	waitForShutdownSignal(sigChan, errChan)
	performGracefulShutdown(cfg, srv)
}
