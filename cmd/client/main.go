package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YabaiTech/YAPM/internal/adapter"
	"github.com/YabaiTech/YAPM/internal/client"
	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/service"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "yapm: configuration error:", err)
		return 2
	}

	log := logger.NewClientLogger("yapm", cfg.Vault.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Directory, log)
	if err != nil {
		log.Err(err).Msg("error opening account directories")
		fmt.Fprintln(os.Stderr, "yapm: could not open the account directories:", err)
		return 1
	}
	defer storages.Close()

	blobs, err := adapter.NewBlobTransfer(cfg.Blob, log)
	if err != nil {
		log.Err(err).Msg("error creating blob transfer")
		fmt.Fprintln(os.Stderr, "yapm: invalid blob storage settings:", err)
		return 2
	}

	services := service.NewServices(storages, blobs, cfg.Vault.Dir, log)
	app := client.NewApp(services, cfg.Workers, buildInfo(),
		client.NewTerminalUI(os.Stdin, os.Stdout), client.NewSystemClipboard(), os.Stdout, log)

	if err = app.Run(ctx, args); err != nil {
		return 1
	}
	return 0
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
