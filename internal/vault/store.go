// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault implements the encrypted credential vault file and the
// last-write-wins merge of two vault files.
//
// A vault is a single SQLite file with three tables: metadata (salt and
// password verification value), entries (encrypted records addressed by
// [RecordID]) and deleted (tombstones). Records are never removed without a
// tombstone, so deletions survive a merge with an older copy of the vault.
package vault

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/YabaiTech/YAPM/internal/crypto"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/models"
)

// verificationPlaintext is encrypted into the metadata row at creation.
// A password is accepted only when the stored value decrypts back to it.
const verificationPlaintext = "vault_verification"

// State is the lifecycle position of a [Store].
type State int

const (
	StateUnopened State = iota
	StateConnected
	StateCreated
	StateVerified
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateConnected:
		return "connected"
	case StateCreated:
		return "created"
	case StateVerified:
		return "verified"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Store owns one vault file for the lifetime of a session.
//
// Every operation re-verifies the master password against the metadata row
// before touching records, and every mutation runs in a single transaction.
// A Store is not safe for concurrent use; callers serialize access.
type Store struct {
	path     string
	password string

	db     *store.DB
	lock   *flock.Flock
	engine crypto.Engine
	logger *logger.Logger

	state State
	salt  []byte
	key   []byte

	now func() int64
}

// Open connects to the vault file at path, creating an empty file when it
// does not exist yet. The returned store is in [StateConnected]: call
// [Store.Create] for a new vault or [Store.Verify] for an existing one.
//
// Open takes an exclusive lock on path + ".lock" and fails with
// [ErrVaultLocked] when another handle holds it.
func Open(ctx context.Context, path, password string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		log.Err(err).Str("func", "vault.Open").Str("path", path).Msg("error acquiring vault lock")
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
	if !locked {
		return nil, ErrVaultLocked
	}

	db, err := store.NewConnectSQLite(ctx, path, log)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}

	return &Store{
		path:     path,
		password: password,
		db:       db,
		lock:     lock,
		engine:   crypto.NewEngine(),
		logger:   log,
		state:    StateConnected,
		now:      nowMillis,
	}, nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// Path returns the vault file path.
func (s *Store) Path() string {
	return s.path
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	return s.state
}

// Create writes the schema and the key material for a new vault, deriving
// the key from the password given to [Open].
func (s *Store) Create(ctx context.Context) error {
	if s.state == StateClosed {
		return ErrStoreClosed
	}
	if s.state != StateConnected {
		return ErrAlreadyCreated
	}

	exists, err := s.hasMetadata(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateFailure, err)
	}
	if exists {
		return ErrAlreadyCreated
	}

	salt, err := s.engine.NewSalt()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateFailure, err)
	}
	key := s.engine.DeriveKey(s.password, salt)
	verification, err := s.engine.EncryptWithKey(verificationPlaintext, key, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateFailure, err)
	}

	err = store.WithTx(ctx, s.db.DB, nil, func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, insertMetadata,
			base64.StdEncoding.EncodeToString(salt),
			verification.CipherText+":"+verification.IV,
		)
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*Store.Create").Str("path", s.path).Msg("error writing vault schema")
		return fmt.Errorf("%w: %w", ErrCreateFailure, err)
	}

	s.salt, s.key = salt, key
	s.state = StateCreated
	s.logger.Debug().Str("func", "*Store.Create").Str("path", s.path).Msg("vault created")

	return nil
}

// Verify checks the master password against the stored verification value.
// On success the vault salt becomes the salt for all field operations.
func (s *Store) Verify(ctx context.Context) error {
	return s.verify(ctx)
}

func (s *Store) verify(ctx context.Context) error {
	if s.state == StateClosed {
		return ErrStoreClosed
	}

	saltB64, verification, err := s.readMetadata(ctx)
	if err != nil {
		return err
	}

	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil || len(salt) == 0 {
		return ErrBadVerificationFormat
	}
	ct, iv, ok := strings.Cut(verification, ":")
	if !ok || ct == "" || iv == "" || strings.Contains(iv, ":") {
		return ErrBadVerificationFormat
	}

	key := s.key
	if key == nil || !bytes.Equal(salt, s.salt) {
		key = s.engine.DeriveKey(s.password, salt)
	}

	plain, err := s.engine.DecryptWithKey(models.CipherText{CipherText: ct, IV: iv}, key)
	switch {
	case errors.Is(err, crypto.ErrPaddingOrAuthFailure), err == nil && plain != verificationPlaintext:
		s.salt, s.key = nil, nil
		s.state = StateConnected
		return ErrWrongMasterPassword
	case err != nil:
		return fmt.Errorf("%w: %w", ErrBadVerificationFormat, err)
	}

	s.salt, s.key = salt, key
	s.state = StateVerified

	return nil
}

func (s *Store) hasMetadata(ctx context.Context) (bool, error) {
	var tables int
	if err := s.db.QueryRowContext(ctx, metadataTableExists).Scan(&tables); err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}
	if tables == 0 {
		return false, nil
	}

	var rows int
	if err := s.db.QueryRowContext(ctx, countMetadata).Scan(&rows); err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}

	return rows > 0, nil
}

func (s *Store) readMetadata(ctx context.Context) (salt, verification string, err error) {
	exists, err := s.hasMetadata(ctx)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", ErrMissingMetadata
	}

	err = s.db.QueryRowContext(ctx, selectMetadata).Scan(&salt, &verification)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrMissingMetadata
	}
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}

	return salt, verification, nil
}

// List returns the plaintext of every live record, oldest first.
func (s *Store) List(ctx context.Context) ([]models.Entry, error) {
	if err := s.verify(ctx); err != nil {
		if errors.Is(err, ErrWrongMasterPassword) {
			return nil, fmt.Errorf("%w: %w", ErrOpenFailure, err)
		}
		return nil, err
	}

	records, err := s.queryRecords(ctx, selectLiveEntries)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(records))
	for _, r := range records {
		entry, err := s.openRecord(r, s.key)
		if errors.Is(err, crypto.ErrPaddingOrAuthFailure) {
			return nil, fmt.Errorf("%w: %w", ErrOpenFailure, ErrWrongMasterPassword)
		}
		if err != nil {
			s.logger.Err(err).Str("func", "*Store.List").Str("id", r.ID).Msg("error decrypting record")
			return nil, fmt.Errorf("%w: %w", ErrOpenFailure, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Add stores a record and returns its id. Adding an existing (url, username)
// pair overwrites the record and bumps its timestamp; a tombstone for the id
// is removed so the record is live again.
func (s *Store) Add(ctx context.Context, url, username, password string) (string, error) {
	if url == "" || username == "" || password == "" {
		return "", ErrEmptyField
	}
	if err := s.verify(ctx); err != nil {
		return "", err
	}

	rec, err := s.sealRecord(RecordID(url, username), url, username, password, s.now())
	if err != nil {
		return "", err
	}

	err = s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := putRecord(ctx, tx, rec); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, deleteTombstone, rec.ID)
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*Store.Add").Msg("error adding record")
		return "", err
	}

	return rec.ID, nil
}

// Edit replaces the live record oldID and returns the id of the new record.
// Changing url or username changes the id: the old id is tombstoned and any
// tombstone for the new id is cleared. When another live record already has
// the new id, Edit fails with [ErrDuplicateID] and nothing is written.
func (s *Store) Edit(ctx context.Context, oldID, url, username, password string) (string, error) {
	if url == "" || username == "" || password == "" {
		return "", ErrEmptyField
	}
	if err := s.verify(ctx); err != nil {
		return "", err
	}

	now := s.now()
	rec, err := s.sealRecord(RecordID(url, username), url, username, password, now)
	if err != nil {
		return "", err
	}

	err = s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := deleteLiveRecord(ctx, tx, oldID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertTombstone, oldID, now); err != nil {
			return err
		}
		if rec.ID != oldID {
			if err := ensureNotLive(ctx, tx, rec.ID); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, deleteTombstone, rec.ID); err != nil {
			return err
		}
		return putRecord(ctx, tx, rec)
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidID) && !errors.Is(err, ErrDuplicateID) {
			s.logger.Err(err).Str("func", "*Store.Edit").Msg("error editing record")
		}
		return "", err
	}

	return rec.ID, nil
}

// Delete removes the live record id and tombstones it at the current time.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.verify(ctx); err != nil {
		return err
	}

	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := deleteLiveRecord(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, upsertTombstone, id, s.now())
		return err
	})
	if err != nil && !errors.Is(err, ErrInvalidID) {
		s.logger.Err(err).Str("func", "*Store.Delete").Msg("error deleting record")
	}

	return err
}

// Records returns every stored record row, live or shadowed by a tombstone,
// still encrypted.
func (s *Store) Records(ctx context.Context) ([]models.Record, error) {
	if err := s.verify(ctx); err != nil {
		return nil, err
	}

	return s.queryRecords(ctx, selectAllEntries)
}

// Tombstones returns every tombstone in the vault.
func (s *Store) Tombstones(ctx context.Context) ([]models.Tombstone, error) {
	if err := s.verify(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectTombstones)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}
	defer rows.Close()

	var tombstones []models.Tombstone
	for rows.Next() {
		var t models.Tombstone
		if err := rows.Scan(&t.ID, &t.DeletedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrScanningRow, err)
		}
		tombstones = append(tombstones, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrScanningRow, err)
	}

	return tombstones, nil
}

// Close releases the database handle and the lock. The lock file is left in
// place so every handle locks the same inode. Closing a closed
// store is a no-op.
func (s *Store) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	s.salt, s.key = nil, nil

	var errs []error
	if err := s.db.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.lock.Unlock(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Err(err).Str("func", "*Store.Close").Str("path", s.path).Msg("error closing vault")
		return fmt.Errorf("%w: %w", ErrCloseFailure, err)
	}

	return nil
}

// withTx runs fn in a transaction. Storage errors are reported as
// [ErrWriteFailure]; [ErrInvalidID] and [ErrDuplicateID] pass through.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	err := store.WithTx(ctx, s.db.DB, nil, fn)
	if err == nil || errors.Is(err, ErrInvalidID) || errors.Is(err, ErrDuplicateID) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrWriteFailure, err)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.URL, &r.Username, &r.Password, &r.IV, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrScanningRow, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrScanningRow, err)
	}

	return records, nil
}

// sealRecord encrypts the three fields under key material of s. The url is
// encrypted first with a fresh IV which username and password then reuse:
// the entries table has a single iv column per record.
func (s *Store) sealRecord(id, url, username, password string, timestamp int64) (models.Record, error) {
	urlCT, err := s.engine.EncryptWithKey(url, s.key, nil)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	iv, err := base64.StdEncoding.DecodeString(urlCT.IV)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	usernameCT, err := s.engine.EncryptWithKey(username, s.key, iv)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	passwordCT, err := s.engine.EncryptWithKey(password, s.key, iv)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	return models.Record{
		ID:        id,
		URL:       urlCT.CipherText,
		Username:  usernameCT.CipherText,
		Password:  passwordCT.CipherText,
		IV:        urlCT.IV,
		Timestamp: timestamp,
	}, nil
}

func (s *Store) openRecord(r models.Record, key []byte) (models.Entry, error) {
	open := func(ct string) (string, error) {
		return s.engine.DecryptWithKey(models.CipherText{CipherText: ct, IV: r.IV}, key)
	}

	url, err := open(r.URL)
	if err != nil {
		return models.Entry{}, err
	}
	username, err := open(r.Username)
	if err != nil {
		return models.Entry{}, err
	}
	password, err := open(r.Password)
	if err != nil {
		return models.Entry{}, err
	}

	return models.Entry{ID: r.ID, URL: url, Username: username, Password: password}, nil
}

func putRecord(ctx context.Context, tx *sql.Tx, r models.Record) error {
	_, err := tx.ExecContext(ctx, upsertEntry, r.ID, r.URL, r.Username, r.Password, r.IV, r.Timestamp)
	return err
}

// deleteLiveRecord removes the record row for id, failing with
// [ErrInvalidID] when no live record has that id.
func deleteLiveRecord(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, deleteLiveEntry, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidID
	}

	return nil
}

func ensureNotLive(ctx context.Context, tx *sql.Tx, id string) error {
	var n int
	if err := tx.QueryRowContext(ctx, countLiveEntry, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateID
	}
	return nil
}
