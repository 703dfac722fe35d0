package handler

import (
	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/handler/http"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(blobs store.BlobStorage, cfg config.ServerConfig, build models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(blobs, cfg, build, logger)
	}

	if handlers.HTTP == nil {
		return nil, errMissingHTTPAddress
	}

	return handlers, nil
}
