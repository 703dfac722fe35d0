package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/YabaiTech/YAPM/internal/adapter"
	"github.com/YabaiTech/YAPM/internal/crypto"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/internal/utils"
	"github.com/YabaiTech/YAPM/internal/vault"
	"github.com/YabaiTech/YAPM/models"
)

// ForMergingSuffix is appended to the primary vault path to name the
// downloaded remote copy that still has to be merged.
const ForMergingSuffix = "_for_merging"

type syncCoordinator struct {
	local  store.AccountRepository
	remote store.AccountRepository
	blobs  adapter.BlobTransfer
	hasher crypto.AccountHasher
	merger *vault.Merger

	vaultDir string
	logger   *logger.Logger

	now      func() time.Time
	tempName func() string
}

// NewSyncCoordinator creates a SyncCoordinator over the two account
// directories in storages. Vault files live in vaultDir and are stored
// remotely under their bare file name.
func NewSyncCoordinator(storages *store.Storages, blobs adapter.BlobTransfer, vaultDir string, logger *logger.Logger) SyncCoordinator {
	return &syncCoordinator{
		local:    storages.LocalAccounts,
		remote:   storages.RemoteAccounts,
		blobs:    blobs,
		hasher:   crypto.NewAccountHasher(),
		merger:   vault.NewMerger(logger),
		vaultDir: vaultDir,
		logger:   logger,
		now:      time.Now,
		tempName: utils.NewID,
	}
}

// Login implements SyncCoordinator.
//
// The password is checked against the authoritative record (remote when it
// exists) before any directory row or vault file is changed. Classification
// of the account only happens after that check, so a wrong password on a
// local-only or remote-only account never copies a row between directories.
func (c *syncCoordinator) Login(ctx context.Context, identifier, password string) (*Session, error) {
	local, remote, err := c.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !local.Exists() && !remote.Exists() {
		return nil, ErrNoSuchAccount
	}

	account := remote
	if !remote.Exists() {
		account = local
	}
	if err = c.checkCredentials(identifier, password, account); err != nil {
		return nil, err
	}

	vaultPath := c.vaultPath(account)
	upload := false

	switch {
	case !local.Exists():
		if err = c.local.AddAccount(ctx, remote); err != nil {
			c.logger.Err(err).Str("func", "*syncCoordinator.Login").Msg("error copying remote account to local directory")
			return nil, fmt.Errorf("%w: %w", ErrFailedToSyncWithLocal, err)
		}
		if fileExists(vaultPath) {
			// left behind by a registration whose upload or local row failed
			if upload, err = c.downloadForMerging(ctx, account, vaultPath); err != nil {
				return nil, err
			}
			break
		}
		if err = c.blobs.Download(ctx, remoteName(account), vaultPath); err != nil {
			c.logger.Err(err).Str("func", "*syncCoordinator.Login").Msg("error downloading vault")
			return nil, fmt.Errorf("%w: %w", ErrFailedToDownload, err)
		}

	case !remote.Exists():
		if !fileExists(vaultPath) {
			return nil, ErrUserDoesNotExist
		}
		if err = c.remote.AddAccount(ctx, local); err != nil {
			c.logger.Err(err).Str("func", "*syncCoordinator.Login").Msg("error copying local account to remote directory")
			return nil, fmt.Errorf("%w: %w", ErrFailedToSyncWithCloud, err)
		}
		upload = true

	case !local.SameIdentity(remote):
		c.logger.Warn().Str("func", "*syncCoordinator.Login").Str("username", local.Username).Msg("local account conflicts with remote, remote wins")
		if err = c.local.DeleteAccount(ctx, local.Username); err != nil {
			c.logger.Err(err).Str("func", "*syncCoordinator.Login").Msg("error removing conflicting local account")
			return nil, fmt.Errorf("%w: %w", ErrFailedToRemoveConflict, err)
		}
		if err = c.local.AddAccount(ctx, remote); err != nil {
			c.logger.Err(err).Str("func", "*syncCoordinator.Login").Msg("error copying remote account to local directory")
			return nil, fmt.Errorf("%w: %w", ErrFailedToSyncWithLocal, err)
		}
		if upload, err = c.downloadForMerging(ctx, account, vaultPath); err != nil {
			return nil, err
		}

	default:
		if upload, err = c.downloadForMerging(ctx, account, vaultPath); err != nil {
			return nil, err
		}
	}

	merged, err := c.reconcile(ctx, vaultPath, password)
	if err != nil {
		return nil, err
	}
	if merged || upload {
		if err = c.upload(ctx, account, vaultPath); err != nil {
			return nil, err
		}
	}

	v, err := c.openVault(ctx, vaultPath, password)
	if err != nil {
		return nil, err
	}

	c.touchLastLogin(ctx, account.Username)

	c.logger.Info().Str("func", "*syncCoordinator.Login").Str("username", account.Username).Bool("merged", merged).Msg("logged in")

	return NewSession(account, vaultPath, v, password), nil
}

// Sync implements SyncCoordinator.
func (c *syncCoordinator) Sync(ctx context.Context, session *Session) (err error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.vault == nil {
		return ErrSessionClosed
	}
	if err = session.vault.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSyncWithLocal, err)
	}
	session.vault = nil

	defer func() {
		v, openErr := c.openVault(ctx, session.VaultPath, session.password)
		if openErr != nil {
			err = errors.Join(err, openErr)
			return
		}
		session.vault = v
	}()

	if _, err = c.downloadForMerging(ctx, session.Account, session.VaultPath); err != nil {
		return err
	}
	if _, err = c.reconcile(ctx, session.VaultPath, session.password); err != nil {
		return err
	}

	return c.upload(ctx, session.Account, session.VaultPath)
}

// Logout implements SyncCoordinator.
func (c *syncCoordinator) Logout(ctx context.Context, session *Session) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.vault == nil {
		return ErrSessionClosed
	}

	closeErr := session.vault.Close()
	session.vault = nil
	session.password = ""

	if closeErr != nil {
		c.logger.Err(closeErr).Str("func", "*syncCoordinator.Logout").Msg("error closing vault")
		return closeErr
	}

	if err := c.upload(ctx, session.Account, session.VaultPath); err != nil {
		c.logger.Warn().Err(err).Str("func", "*syncCoordinator.Logout").Msg("vault was not uploaded on logout")
	}

	return nil
}

// lookup fetches the account from both directories. An identifier that
// contains "@" is treated as an email.
func (c *syncCoordinator) lookup(ctx context.Context, identifier string) (local, remote models.Account, err error) {
	get := func(r store.AccountRepository) (models.Account, error) {
		if strings.Contains(identifier, "@") {
			return r.GetByEmail(ctx, identifier)
		}
		return r.GetByUsername(ctx, identifier)
	}

	if local, err = get(c.local); err != nil {
		c.logger.Err(err).Str("func", "*syncCoordinator.lookup").Msg("error reading local directory")
		return local, remote, fmt.Errorf("%w: %w", ErrFailedToSyncWithLocal, err)
	}
	if remote, err = get(c.remote); err != nil {
		c.logger.Err(err).Str("func", "*syncCoordinator.lookup").Msg("error reading remote directory")
		return local, remote, fmt.Errorf("%w: %w", ErrFailedToSyncWithCloud, err)
	}

	return local, remote, nil
}

func (c *syncCoordinator) checkCredentials(identifier, password string, account models.Account) error {
	if strings.Contains(identifier, "@") && identifier != account.Email {
		return ErrInvalidCredentials
	}

	ok, err := c.hasher.Verify(password, account)
	if err != nil {
		c.logger.Err(err).Str("func", "*syncCoordinator.checkCredentials").Str("username", account.Username).Msg("stored password hash is unreadable")
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	return nil
}

// downloadForMerging fetches the remote vault next to the primary one. A
// missing remote blob is not an error while a local vault exists; the
// returned flag then asks the caller to upload the local vault.
func (c *syncCoordinator) downloadForMerging(ctx context.Context, account models.Account, vaultPath string) (bool, error) {
	err := c.blobs.Download(ctx, remoteName(account), vaultPath+ForMergingSuffix)
	if err == nil {
		return false, nil
	}

	if errors.Is(err, adapter.ErrNotFound) && fileExists(vaultPath) {
		c.logger.Warn().Str("func", "*syncCoordinator.downloadForMerging").Str("name", remoteName(account)).Msg("remote vault is missing, local copy will be uploaded")
		return true, nil
	}

	c.logger.Err(err).Str("func", "*syncCoordinator.downloadForMerging").Str("name", remoteName(account)).Msg("error downloading vault")
	return false, fmt.Errorf("%w: %w", ErrFailedToDownload, err)
}

// reconcile folds a downloaded "_for_merging" copy into the primary vault.
// It reports whether a merge took place.
func (c *syncCoordinator) reconcile(ctx context.Context, vaultPath, password string) (bool, error) {
	otherPath := vaultPath + ForMergingSuffix
	hasPrimary, hasOther := fileExists(vaultPath), fileExists(otherPath)

	switch {
	case hasPrimary && hasOther:
		tmpPath := filepath.Join(filepath.Dir(vaultPath), "."+c.tempName()+".db")
		if err := c.merger.MergeFiles(ctx, vaultPath, otherPath, tmpPath, password); err != nil {
			c.logger.Err(err).Str("func", "*syncCoordinator.reconcile").Str("path", vaultPath).Msg("error merging vaults")
			return false, fmt.Errorf("%w: %w", ErrFailedToMergeFiles, err)
		}
		if err := os.Rename(tmpPath, vaultPath); err != nil {
			_ = os.Remove(tmpPath)
			return false, fmt.Errorf("%w: %w", ErrFailedToMergeFiles, err)
		}
		if err := os.Remove(otherPath); err != nil {
			c.logger.Warn().Err(err).Str("func", "*syncCoordinator.reconcile").Str("path", otherPath).Msg("error removing merged copy")
		}
		return true, nil

	case hasOther:
		if err := os.Rename(otherPath, vaultPath); err != nil {
			return false, fmt.Errorf("%w: %w", ErrFailedToSyncWithLocal, err)
		}
		return false, nil

	case hasPrimary:
		return false, nil

	default:
		return false, ErrUserDoesNotExist
	}
}

func (c *syncCoordinator) upload(ctx context.Context, account models.Account, vaultPath string) error {
	if err := c.blobs.Upload(ctx, vaultPath, remoteName(account)); err != nil {
		c.logger.Err(err).Str("func", "*syncCoordinator.upload").Str("name", remoteName(account)).Msg("error uploading vault")
		return fmt.Errorf("%w: %w", ErrFailedToUpload, err)
	}
	return nil
}

func (c *syncCoordinator) openVault(ctx context.Context, vaultPath, password string) (*vault.Store, error) {
	v, err := vault.Open(ctx, vaultPath, password, c.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToOpenVault, err)
	}
	if err = v.Verify(ctx); err != nil {
		_ = v.Close()
		return nil, fmt.Errorf("%w: %w", ErrFailedToOpenVault, err)
	}
	return v, nil
}

// touchLastLogin records the login in both directories. Failures are only
// logged.
func (c *syncCoordinator) touchLastLogin(ctx context.Context, username string) {
	millis := c.now().UnixMilli()
	if err := c.local.UpdateLastLogin(ctx, username, millis); err != nil {
		c.logger.Warn().Err(err).Str("func", "*syncCoordinator.touchLastLogin").Msg("error updating local last login")
	}
	if err := c.remote.UpdateLastLogin(ctx, username, millis); err != nil {
		c.logger.Warn().Err(err).Str("func", "*syncCoordinator.touchLastLogin").Msg("error updating remote last login")
	}
}

func (c *syncCoordinator) vaultPath(account models.Account) string {
	return filepath.Join(c.vaultDir, remoteName(account))
}

func remoteName(account models.Account) string {
	return filepath.Base(account.VaultFileName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
