package http

import (
	"time"

	"github.com/YabaiTech/YAPM/internal/config"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/models"
)

// DefaultMaxUploadSize caps a single uploaded object.
const DefaultMaxUploadSize int64 = 64 << 20

type Handler struct {
	blobs      store.BlobStorage
	authConfig config.ServerAuth
	build      models.AppBuildInfo

	requestTimeout time.Duration
	maxUploadSize  int64

	logger *logger.Logger
}

func NewHandler(blobs store.BlobStorage, cfg config.ServerConfig, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		blobs:          blobs,
		authConfig:     cfg.Auth,
		build:          build,
		requestTimeout: cfg.Server.RequestTimeout,
		maxUploadSize:  DefaultMaxUploadSize,
		logger:         logger,
	}
}
