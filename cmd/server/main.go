package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/handler"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/server"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/internal/utils"
	"github.com/YabaiTech/YAPM/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: yapm-server [flags] [serve]
       yapm-server [flags] token -role anon|service_role [-ttl 720h]`

func main() {
	build := buildInfo()

	log := logger.NewLogger("yapm-server")
	cfg, rest, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	command := "serve"
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	switch command {
	case "serve":
		serve(cfg, build, log)
	case "token":
		if err = issueToken(cfg.Auth, rest); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func serve(cfg *config.ServerConfig, build models.AppBuildInfo, log *logger.Logger) {
	log.Info().
		Str("version", build.BuildVersion()).
		Str("date", build.BuildDate()).
		Str("commit", build.BuildCommit()).
		Msg("starting blob relay")

	blobs, err := store.NewBlobDirectory(cfg.Server.StorageDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening blob storage")
	}

	handlers, err := handler.NewHandlers(blobs, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// issueToken prints a signed API key for the configured relay.
func issueToken(auth config.ServerAuth, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	role := fs.String("role", "", "key role: anon or service_role")
	ttl := fs.Duration("ttl", 0, "key lifetime, 0 never expires")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *role == "" {
		return errors.New(usage)
	}

	key, err := utils.IssueAPIKey(auth.TokenIssuer, *role, *ttl, auth.TokenSignKey)
	if err != nil {
		return fmt.Errorf("error issuing API key: %w", err)
	}

	fmt.Println(key.String())
	if *ttl > 0 {
		fmt.Fprintf(os.Stderr, "expires at %s\n", time.Now().Add(*ttl).Format(time.RFC3339))
	}
	return nil
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
