package client

import (
	"context"
	"strings"

	"github.com/YabaiTech/YAPM/internal/service"
	"github.com/YabaiTech/YAPM/internal/vault"
	"github.com/YabaiTech/YAPM/models"
)

func listEntries(ctx context.Context, session *service.Session) (entries []models.Entry, err error) {
	err = session.WithVault(func(v *vault.Store) error {
		entries, err = v.List(ctx)
		return err
	})
	return entries, err
}

// addEntry stores a new entry. An existing entry for the same url and
// username is left alone and errEntryExists is returned.
func addEntry(ctx context.Context, session *service.Session, url, username, password string) (id string, err error) {
	url, username = strings.TrimSpace(url), strings.TrimSpace(username)

	err = session.WithVault(func(v *vault.Store) error {
		entries, err := v.List(ctx)
		if err != nil {
			return err
		}
		if _, err = findEntry(entries, vault.RecordID(url, username)); err == nil {
			return errEntryExists
		}

		id, err = v.Add(ctx, url, username, password)
		return err
	})
	return id, err
}

func editEntry(ctx context.Context, session *service.Session, id, url, username, password string) (newID string, err error) {
	err = session.WithVault(func(v *vault.Store) error {
		newID, err = v.Edit(ctx, id, strings.TrimSpace(url), strings.TrimSpace(username), password)
		return err
	})
	return newID, err
}

// deleteEntry deletes the entry prefix resolves to.
func deleteEntry(ctx context.Context, session *service.Session, prefix string) error {
	return session.WithVault(func(v *vault.Store) error {
		entries, err := v.List(ctx)
		if err != nil {
			return err
		}
		entry, err := findEntry(entries, prefix)
		if err != nil {
			return err
		}
		return v.Delete(ctx, entry.ID)
	})
}

// findEntry returns the entry whose ID equals prefix or, failing that, the
// only entry whose ID starts with it.
func findEntry(entries []models.Entry, prefix string) (models.Entry, error) {
	if prefix == "" {
		return models.Entry{}, errUnknownEntry
	}

	var (
		match models.Entry
		found int
	)
	for _, e := range entries {
		if e.ID == prefix {
			return e, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			match = e
			found++
		}
	}

	switch found {
	case 0:
		return models.Entry{}, errUnknownEntry
	case 1:
		return match, nil
	default:
		return models.Entry{}, errAmbiguousEntry
	}
}
