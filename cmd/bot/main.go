package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/app"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/config"
	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; exit immediately.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	// Ignore sync error; it is expected on some platforms.
	defer func() { _ = log.Sync() }()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("app init failed", zap.Error(err))
	}

	if err := application.Run(context.Background()); err != nil {
		log.Fatal("app run failed", zap.Error(err))
	}
}
