package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/YabaiTech/YAPM/internal/app"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/service"
	"github.com/YabaiTech/YAPM/internal/vault"
	"github.com/YabaiTech/YAPM/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSession(t *testing.T, path string) (*service.Session, *fakeCoordinator) {
	t.Helper()
	ctx := context.Background()

	coordinator := &fakeCoordinator{vaultPath: path}
	session, err := coordinator.Login(ctx, "alice", testMasterPassword)
	require.NoError(t, err)
	t.Cleanup(func() { _ = coordinator.Logout(ctx, session) })

	return session, coordinator
}

type screenFixture struct {
	session *service.Session
	sync    *fakeCoordinator
	clip    *fakeClipboard
	d       *driver
}

// newScreenFixture opens a vault holding entries and runs a vault screen on
// it until the first load is done.
func newScreenFixture(t *testing.T, entries ...testEntry) *screenFixture {
	t.Helper()

	path, _ := newTestVault(t, entries...)
	session, coordinator := openTestSession(t, path)
	clip := &fakeClipboard{}

	m := newVaultScreen(context.Background(), session, coordinator, clip, logger.Nop())
	d := newDriver(m)
	d.run(m.Init())

	return &screenFixture{session: session, sync: coordinator, clip: clip, d: d}
}

func (f *screenFixture) send(msgs ...tea.KeyMsg) {
	for _, k := range msgs {
		f.d.send(k)
	}
}

func (f *screenFixture) screen() vaultScreen {
	return f.d.model.(vaultScreen)
}

func (f *screenFixture) vaultEntries(t *testing.T) []models.Entry {
	t.Helper()
	entries, err := listEntries(context.Background(), f.session)
	require.NoError(t, err)
	return sortEntries(entries)
}

func TestVaultScreen_ShowsSortedEntries(t *testing.T) {
	f := newScreenFixture(t,
		testEntry{"https://b.example.com", "bob", "pw-bob"},
		testEntry{"https://a.example.com", "alice", "pw-alice"},
	)

	s := f.screen()
	require.True(t, s.loaded)
	require.Len(t, s.entries, 2)
	assert.Equal(t, "https://a.example.com", s.entries[0].URL)
	assert.Contains(t, s.View(), "https://b.example.com")
	assert.NotContains(t, s.View(), "pw-alice")
}

func TestVaultScreen_EmptyVault(t *testing.T) {
	f := newScreenFixture(t)

	assert.Contains(t, f.screen().View(), app.MsgNoEntries)

	f.send(press("e", "d", "c")...)
	assert.Equal(t, modeBrowse, f.screen().mode)
	assert.Empty(t, f.clip.text)
}

func TestVaultScreen_AddEntry(t *testing.T) {
	f := newScreenFixture(t, testEntry{"https://z.example.com", "zed", "pw-zed"})

	f.send(script(press("a"), typed("https://example.com", "bob", "hunter22"))...)

	id := vault.RecordID("https://example.com", "bob")
	s := f.screen()
	assert.Equal(t, modeBrowse, s.mode)
	assert.Equal(t, fmt.Sprintf(app.MsgEntryAdded, shortID(id)), s.status)
	current, ok := s.current()
	require.True(t, ok)
	assert.Equal(t, id, current.ID, "cursor moves to the new entry")
	assert.Contains(t, f.vaultEntries(t), models.Entry{ID: id, URL: "https://example.com", Username: "bob", Password: "hunter22"})
}

func TestVaultScreen_TypedAheadRunes(t *testing.T) {
	f := newScreenFixture(t)

	f.send(text("ahttps://example.com"), enterKey, text("bob"), enterKey, text("hunter22"), enterKey)

	entries := f.vaultEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com", entries[0].URL)
	assert.Equal(t, "hunter22", entries[0].Password)
}

func TestVaultScreen_AddExistingEntryIsRefused(t *testing.T) {
	f := newScreenFixture(t, testEntry{"https://example.com", "bob", "original"})

	f.send(script(press("a"), typed("https://example.com", "bob", "replacement"))...)

	assert.Equal(t, app.MsgEntryExists, f.screen().errMsg)
	assert.Equal(t, "original", f.vaultEntries(t)[0].Password)
}

func TestVaultScreen_EditEntry(t *testing.T) {
	f := newScreenFixture(t, testEntry{"https://example.com", "bob", "hunter22"})

	f.send(script(press("e"), []tea.KeyMsg{enterKey, ctrlU}, typed("robert"), []tea.KeyMsg{enterKey})...)

	newID := vault.RecordID("https://example.com", "robert")
	assert.Equal(t, fmt.Sprintf(app.MsgEntryUpdated, shortID(newID)), f.screen().status)
	assert.Equal(t, []models.Entry{{ID: newID, URL: "https://example.com", Username: "robert", Password: "hunter22"}}, f.vaultEntries(t))
}

func TestVaultScreen_EditOntoAnotherEntryIsRefused(t *testing.T) {
	f := newScreenFixture(t,
		testEntry{"https://a.example.com", "alice", "pw-alice"},
		testEntry{"https://b.example.com", "bob", "pw-bob"},
	)
	before := f.vaultEntries(t)

	f.send(script(
		press("e"),
		[]tea.KeyMsg{ctrlU}, typed("https://b.example.com"),
		[]tea.KeyMsg{ctrlU}, typed("bob"),
		[]tea.KeyMsg{enterKey},
	)...)

	assert.Equal(t, app.MsgDuplicateEntry, f.screen().errMsg)
	assert.Equal(t, before, f.vaultEntries(t))
}

func TestVaultScreen_EditCanceled(t *testing.T) {
	f := newScreenFixture(t, testEntry{"https://example.com", "bob", "hunter22"})
	before := f.vaultEntries(t)

	f.send(press("e")...)
	require.Equal(t, modeEdit, f.screen().mode)
	f.send(text("-changed"), escKey)

	assert.Equal(t, modeBrowse, f.screen().mode)
	assert.Equal(t, before, f.vaultEntries(t))
}

func TestVaultScreen_DeleteAsksFirst(t *testing.T) {
	f := newScreenFixture(t, testEntry{"https://example.com", "bob", "hunter22"})

	f.send(press("d")...)
	require.Equal(t, modeConfirmDelete, f.screen().mode)
	assert.Contains(t, f.screen().View(), fmt.Sprintf(app.MsgConfirmDelete, "https://example.com", "bob"))

	f.send(press("n")...)
	assert.Len(t, f.vaultEntries(t), 1)

	f.send(press("d", "y")...)
	assert.Equal(t, app.MsgEntryDeleted, f.screen().status)
	assert.Empty(t, f.vaultEntries(t))
	assert.Contains(t, f.screen().View(), app.MsgNoEntries)
}

func TestVaultScreen_CopyAndReveal(t *testing.T) {
	f := newScreenFixture(t,
		testEntry{"https://a.example.com", "alice", "pw-alice"},
		testEntry{"https://b.example.com", "bob", "pw-bob"},
	)

	f.send(press("j", "c")...)

	assert.Equal(t, "pw-bob", f.clip.text)
	assert.Equal(t, app.MsgCopied, f.screen().status)
	assert.NotContains(t, f.d.transcript.String(), "pw-bob")

	f.send(press("r")...)
	assert.Contains(t, f.screen().View(), "pw-bob")
}

func TestVaultScreen_ClipboardFailure(t *testing.T) {
	f := newScreenFixture(t, testEntry{"https://example.com", "bob", "hunter22"})
	f.clip.err = errClipboardUnsupported

	f.send(press("c")...)

	assert.Equal(t, app.MsgInternalError, f.screen().errMsg)
	assert.Empty(t, f.screen().status)
}

func TestVaultScreen_SyncFailureKeepsScreenOpen(t *testing.T) {
	f := newScreenFixture(t)
	f.sync.syncErr = fmt.Errorf("%w: %w", service.ErrFailedToMergeFiles, vault.ErrMergeFailure)

	f.send(press("s", "s")...)

	assert.Equal(t, 2, f.sync.syncs)
	assert.Equal(t, app.MsgMergeFailed, f.screen().errMsg)
	assert.False(t, f.screen().syncing)
	assert.False(t, f.d.quit)
}

func TestVaultScreen_Sync(t *testing.T) {
	f := newScreenFixture(t)

	f.send(press("s")...)

	assert.Equal(t, 1, f.sync.syncs)
	assert.Equal(t, app.MsgSynced, f.screen().status)
}

func TestVaultScreen_QuitWaitsForRunningOperation(t *testing.T) {
	f := newScreenFixture(t)

	model, syncCmd := f.screen().Update(text("s"))
	require.NotNil(t, syncCmd)

	model, cmd := model.Update(text("q"))
	assert.Nil(t, cmd)
	assert.False(t, model.(vaultScreen).quit)

	model, cmd = model.Update(syncDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, model.(vaultScreen).quit)
}

func TestVaultScreen_KeysBeforeFirstLoadAreHeld(t *testing.T) {
	path, _ := newTestVault(t, testEntry{"https://example.com", "bob", "hunter22"})
	session, coordinator := openTestSession(t, path)
	clip := &fakeClipboard{}
	m := newVaultScreen(context.Background(), session, coordinator, clip, logger.Nop())

	model, cmd := m.Update(text("c"))
	assert.Nil(t, cmd)
	assert.Empty(t, clip.text)

	model, _ = model.Update(m.Init()())
	assert.Equal(t, "hunter22", clip.text)
	assert.True(t, model.(vaultScreen).loaded)
}

func TestVaultScreen_EndOfInputQuits(t *testing.T) {
	f := newScreenFixture(t)

	f.send(ctrlD)

	assert.True(t, f.d.quit)
}
