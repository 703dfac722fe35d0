package vault

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"

	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/store"
	"github.com/YabaiTech/YAPM/models"
)

// Merger reconciles two vaults with last-write-wins semantics in which a
// tombstone beats a record unless the record is strictly newer.
type Merger struct {
	logger *logger.Logger
}

// NewMerger returns a Merger that logs through log.
func NewMerger(log *logger.Logger) *Merger {
	return &Merger{logger: log}
}

// snapshot is the raw content of one side of a merge.
type snapshot struct {
	records    map[string]models.Record
	tombstones map[string]int64
}

// mergeStep is the outcome for a single id.
type mergeStep struct {
	id        string
	deleted   bool
	deletedAt int64
	entry     models.Entry
	timestamp int64
}

// stamp is a timestamp that may be absent. An absent stamp orders below
// every present one.
type stamp struct {
	at int64
	ok bool
}

func (s stamp) after(o stamp) bool {
	return s.ok && (!o.ok || s.at > o.at)
}

func latest(a, b stamp) stamp {
	if b.after(a) {
		return b
	}
	return a
}

// Merge writes the reconciliation of a and b into dst. dst may be a itself.
//
// All three stores must have been opened with the same master password.
// Records are decrypted with the key of the side they come from and
// re-encrypted with the key of dst under a fresh IV, so a and b may have
// different salts. The whole merge is one transaction on dst.
func (m *Merger) Merge(ctx context.Context, dst, a, b *Store) error {
	if a.password != b.password || dst.password != a.password {
		return ErrDifferentMasterPassword
	}

	for _, s := range []*Store{a, b, dst} {
		if err := s.verify(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrMergeFailure, err)
		}
	}

	snapA, err := a.snapshot(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMergeFailure, err)
	}
	snapB, err := b.snapshot(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMergeFailure, err)
	}

	ids := unionIDs(snapA, snapB)
	steps := make([]mergeStep, 0, len(ids))
	for _, id := range ids {
		step, err := resolve(id, a, snapA, b, snapB)
		if err != nil {
			m.logger.Err(err).Str("func", "*Merger.Merge").Str("id", id).Msg("error decrypting record")
			return fmt.Errorf("%w: %w", ErrMergeFailure, err)
		}
		steps = append(steps, step)
	}

	err = store.WithTx(ctx, dst.db.DB, nil, func(ctx context.Context, tx *sql.Tx) error {
		for _, step := range steps {
			if err := dst.applyStep(ctx, tx, step); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		m.logger.Err(err).Str("func", "*Merger.Merge").Str("dst", dst.path).Msg("error writing merged vault")
		return fmt.Errorf("%w: %w", ErrMergeFailure, err)
	}

	m.logger.Debug().Str("func", "*Merger.Merge").Int("ids", len(steps)).Str("dst", dst.path).Msg("vaults merged")

	return nil
}

// MergeFiles merges the vaults at primaryPath and otherPath into a new vault
// created at outPath. The inputs are never modified. On failure outPath is
// removed so no partial vault is left behind; the caller decides whether to
// move outPath over the primary.
func (m *Merger) MergeFiles(ctx context.Context, primaryPath, otherPath, outPath, password string) (err error) {
	if _, statErr := os.Stat(outPath); statErr == nil {
		return fmt.Errorf("%w: %s already exists", ErrMergeFailure, outPath)
	}
	for _, path := range []string{primaryPath, otherPath} {
		if _, statErr := os.Stat(path); statErr != nil {
			return fmt.Errorf("%w: %w", ErrMergeFailure, statErr)
		}
	}

	var opened []*Store
	defer func() {
		for _, s := range opened {
			if closeErr := s.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("%w: %w", ErrMergeFailure, closeErr)
			}
		}
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	open := func(path string) (*Store, error) {
		s, err := Open(ctx, path, password, m.logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMergeFailure, err)
		}
		opened = append(opened, s)
		return s, nil
	}

	primary, err := open(primaryPath)
	if err != nil {
		return err
	}
	other, err := open(otherPath)
	if err != nil {
		return err
	}

	out, err := open(outPath)
	if err != nil {
		return err
	}
	if err = out.Create(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrMergeFailure, err)
	}

	return m.Merge(ctx, out, primary, other)
}

func (s *Store) snapshot(ctx context.Context) (snapshot, error) {
	records, err := s.queryRecords(ctx, selectAllEntries)
	if err != nil {
		return snapshot{}, err
	}
	tombstones, err := s.Tombstones(ctx)
	if err != nil {
		return snapshot{}, err
	}

	snap := snapshot{
		records:    make(map[string]models.Record, len(records)),
		tombstones: make(map[string]int64, len(tombstones)),
	}
	for _, r := range records {
		snap.records[r.ID] = r
	}
	for _, t := range tombstones {
		snap.tombstones[t.ID] = t.DeletedAt
	}

	return snap, nil
}

// ids returns every id with a record or a tombstone, sorted.
func (s snapshot) ids() []string {
	ids := make([]string, 0, len(s.records)+len(s.tombstones))
	for id := range s.records {
		ids = append(ids, id)
	}
	for id := range s.tombstones {
		if _, ok := s.records[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids
}

func unionIDs(a, b snapshot) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range append(a.ids(), b.ids()...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

func (s snapshot) liveStamp(id string) stamp {
	r, ok := s.records[id]
	return stamp{at: r.Timestamp, ok: ok}
}

func (s snapshot) deletedStamp(id string) stamp {
	at, ok := s.tombstones[id]
	return stamp{at: at, ok: ok}
}

// resolve decides the merged state of id. Ties between the two records go
// to a; a tie between a record and a tombstone keeps the record.
func resolve(id string, a *Store, snapA snapshot, b *Store, snapB snapshot) (mergeStep, error) {
	liveA, liveB := snapA.liveStamp(id), snapB.liveStamp(id)
	maxLive := latest(liveA, liveB)
	maxDeleted := latest(snapA.deletedStamp(id), snapB.deletedStamp(id))

	if maxDeleted.after(maxLive) {
		return mergeStep{id: id, deleted: true, deletedAt: maxDeleted.at}, nil
	}

	src, rec := a, snapA.records[id]
	if !liveA.ok || liveB.after(liveA) {
		src, rec = b, snapB.records[id]
	}

	entry, err := src.openRecord(rec, src.key)
	if err != nil {
		return mergeStep{}, err
	}

	return mergeStep{id: id, entry: entry, timestamp: rec.Timestamp}, nil
}

func (s *Store) applyStep(ctx context.Context, tx *sql.Tx, step mergeStep) error {
	if step.deleted {
		if _, err := tx.ExecContext(ctx, upsertTombstone, step.id, step.deletedAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, deleteEntry, step.id)
		return err
	}

	rec, err := s.sealRecord(step.id, step.entry.URL, step.entry.Username, step.entry.Password, step.timestamp)
	if err != nil {
		return err
	}
	if err := putRecord(ctx, tx, rec); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, deleteTombstone, step.id)
	return err
}
