package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/YabaiTech/YAPM/internal/adapter"
	"github.com/YabaiTech/YAPM/internal/crypto"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/internal/validators"
	"github.com/YabaiTech/YAPM/internal/vault"
	"github.com/YabaiTech/YAPM/models"
)

// Vault file names are username + a number in [minVaultSuffix, maxVaultSuffix) + ".db".
const (
	minVaultSuffix = 1
	maxVaultSuffix = 90000

	vaultNameAttempts = 16
)

type accountService struct {
	local     store.AccountRepository
	remote    store.AccountRepository
	blobs     adapter.BlobTransfer
	hasher    crypto.AccountHasher
	validator validators.Validator

	vaultDir string
	logger   *logger.Logger

	now        func() time.Time
	vaultIndex func() int
}

// NewAccountService creates an AccountService that writes new vaults to
// vaultDir.
func NewAccountService(storages *store.Storages, blobs adapter.BlobTransfer, vaultDir string, logger *logger.Logger) AccountService {
	return &accountService{
		local:      storages.LocalAccounts,
		remote:     storages.RemoteAccounts,
		blobs:      blobs,
		hasher:     crypto.NewAccountHasher(),
		validator:  validators.NewAccountValidator(),
		vaultDir:   vaultDir,
		logger:     logger,
		now:        time.Now,
		vaultIndex: func() int { return minVaultSuffix + rand.IntN(maxVaultSuffix-minVaultSuffix) },
	}
}

// Register implements AccountService.
//
// The remote directory row is written before the upload and the local row
// last. A failure after the remote row exists is healed by the next Login,
// which treats the account as remote-only or re-uploads a missing vault.
func (s *accountService) Register(ctx context.Context, reg models.Registration) (models.Account, error) {
	if err := s.validator.Validate(ctx, reg); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.checkAvailable(ctx, reg); err != nil {
		return models.Account{}, err
	}

	salt, err := s.hasher.NewSalt()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrFailedToRegister, err)
	}
	hash, err := s.hasher.Hash(reg.Password, salt)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrFailedToRegister, err)
	}

	vaultPath, err := s.createVault(ctx, reg)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		Username:          reg.Username,
		Email:             reg.Email,
		HashedPassword:    hash,
		PasswordSalt:      salt,
		VaultFileName:     filepath.Base(vaultPath),
		LastLoginAtMillis: s.now().UnixMilli(),
	}

	if err = s.remote.AddAccount(ctx, account); err != nil {
		_ = os.Remove(vaultPath)
		if errors.Is(err, store.ErrAccountAlreadyExists) {
			return models.Account{}, ErrUsernameAlreadyExists
		}
		s.logger.Err(err).Str("func", "*accountService.Register").Msg("error adding account to remote directory")
		return models.Account{}, fmt.Errorf("%w: %w", ErrFailedToSyncWithCloud, err)
	}

	if err = s.blobs.Upload(ctx, vaultPath, account.VaultFileName); err != nil {
		s.logger.Err(err).Str("func", "*accountService.Register").Msg("error uploading new vault")
		return account, fmt.Errorf("%w: %w", ErrFailedToUpload, err)
	}

	if err = s.local.AddAccount(ctx, account); err != nil {
		s.logger.Err(err).Str("func", "*accountService.Register").Msg("error adding account to local directory")
		return account, fmt.Errorf("%w: %w", ErrFailedToSyncWithLocal, err)
	}

	s.logger.Info().Str("func", "*accountService.Register").Str("username", account.Username).Str("vault", account.VaultFileName).Msg("account registered")

	return account, nil
}

// checkAvailable rejects a username or email already known to the remote
// directory, and a username already present locally.
func (s *accountService) checkAvailable(ctx context.Context, reg models.Registration) error {
	byName, err := s.remote.GetByUsername(ctx, reg.Username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSyncWithCloud, err)
	}
	if byName.Exists() {
		return ErrUsernameAlreadyExists
	}

	byEmail, err := s.remote.GetByEmail(ctx, reg.Email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSyncWithCloud, err)
	}
	if byEmail.Exists() {
		return ErrEmailAlreadyExists
	}

	localName, err := s.local.GetByUsername(ctx, reg.Username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSyncWithLocal, err)
	}
	if localName.Exists() {
		return ErrUsernameAlreadyExists
	}

	return nil
}

// createVault picks an unused vault file name and creates an empty vault
// protected by the registration password.
func (s *accountService) createVault(ctx context.Context, reg models.Registration) (string, error) {
	if err := os.MkdirAll(s.vaultDir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToCreateVault, err)
	}

	var vaultPath string
	for range vaultNameAttempts {
		candidate := filepath.Join(s.vaultDir, reg.Username+strconv.Itoa(s.vaultIndex())+".db")
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			vaultPath = candidate
			break
		}
	}
	if vaultPath == "" {
		return "", fmt.Errorf("%w: no free vault file name", ErrFailedToCreateVault)
	}

	v, err := vault.Open(ctx, vaultPath, reg.Password, s.logger)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToCreateVault, err)
	}
	createErr := v.Create(ctx)
	closeErr := v.Close()
	if err = errors.Join(createErr, closeErr); err != nil {
		_ = os.Remove(vaultPath)
		s.logger.Err(err).Str("func", "*accountService.createVault").Str("path", vaultPath).Msg("error creating vault")
		return "", fmt.Errorf("%w: %w", ErrFailedToCreateVault, err)
	}

	return vaultPath, nil
}
