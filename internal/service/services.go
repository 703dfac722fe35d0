package service

import (
	"github.com/YabaiTech/YAPM/internal/adapter"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
)

type Services struct {
	AccountService  AccountService
	SyncCoordinator SyncCoordinator
}

func NewServices(storages *store.Storages, blobs adapter.BlobTransfer, vaultDir string, logger *logger.Logger) *Services {
	return &Services{
		AccountService:  NewAccountService(storages, blobs, vaultDir, logger),
		SyncCoordinator: NewSyncCoordinator(storages, blobs, vaultDir, logger),
	}
}
