package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/YabaiTech/YAPM/internal/app"
	"github.com/YabaiTech/YAPM/internal/logger"
	"github.com/YabaiTech/YAPM/internal/service"
	"github.com/YabaiTech/YAPM/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type screenMode int

const (
	modeBrowse screenMode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

const (
	labelURL      = "URL"
	labelUsername = "Username"
	labelPassword = "Password"
)

type entriesLoadedMsg struct {
	entries []models.Entry
	err     error
}

type entrySavedMsg struct {
	id    string
	added bool
	err   error
}

type entryDeletedMsg struct {
	err error
}

type syncDoneMsg struct {
	err error
}

// vaultScreen is the logged-in view: a table of the vault entries with
// hotkeys to add, edit, delete, copy and sync them.
//
// Vault operations run as commands. A quit requested while one is still
// running waits for it, so nothing typed ahead of the quit is lost.
type vaultScreen struct {
	ctx         context.Context
	session     *service.Session
	coordinator service.SyncCoordinator
	clipboard   Clipboard
	logger      *logger.Logger

	entries  []models.Entry
	idx      int
	selectID string
	loaded   bool
	reveal   bool

	mode   screenMode
	form   formModel
	target models.Entry

	syncing bool
	spinner spinner.Model

	// keys received before the first load are held back until it is done
	queued []tea.KeyMsg

	pending       int
	quitRequested bool
	quit          bool

	status string
	errMsg string
}

func newVaultScreen(ctx context.Context, session *service.Session, coordinator service.SyncCoordinator,
	clipboard Clipboard, logger *logger.Logger) vaultScreen {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return vaultScreen{
		ctx:         ctx,
		session:     session,
		coordinator: coordinator,
		clipboard:   clipboard,
		logger:      logger,
		spinner:     s,
		pending:     1, // the load issued by Init
	}
}

func (m vaultScreen) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m vaultScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.pending--
		m.loaded = true
		queued := m.queued
		m.queued = nil
		if msg.err != nil {
			m.fail("load entries", msg.err)
		} else {
			m.entries = sortEntries(msg.entries)
			m.moveToSelected()
		}
		if len(queued) > 0 {
			return m.replay(queued)
		}
		return m.settle(nil)

	case entrySavedMsg:
		m.pending--
		if msg.err != nil {
			m.fail("save entry", msg.err)
			return m.settle(nil)
		}
		if msg.added {
			m.status = fmt.Sprintf(app.MsgEntryAdded, shortID(msg.id))
		} else {
			m.status = fmt.Sprintf(app.MsgEntryUpdated, shortID(msg.id))
		}
		m.errMsg = ""
		m.selectID = msg.id
		cmd := m.reload()
		return m.settle(cmd)

	case entryDeletedMsg:
		m.pending--
		if msg.err != nil {
			m.fail("delete entry", msg.err)
			return m.settle(nil)
		}
		m.status = app.MsgEntryDeleted
		m.errMsg = ""
		cmd := m.reload()
		return m.settle(cmd)

	case syncDoneMsg:
		m.pending--
		m.syncing = false
		if msg.err != nil {
			m.fail("sync", msg.err)
			return m.settle(nil)
		}
		m.status = app.MsgSynced
		m.errMsg = ""
		cmd := m.reload()
		return m.settle(cmd)

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.loaded {
			m.queued = append(m.queued, msg)
			return m, nil
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m vaultScreen) replay(queued []tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		model tea.Model = m
		cmds            = make([]tea.Cmd, 0, len(queued))
	)
	for _, k := range queued {
		var cmd tea.Cmd
		model, cmd = model.Update(k)
		cmds = append(cmds, cmd)
	}
	return model, tea.Batch(cmds...)
}

func (m vaultScreen) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitRequested {
		return m, nil
	}
	if key.Matches(msg, keys.interrupt) {
		m.quitRequested = true
		return m.settle(nil)
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return m.updateForm(msg)
	}

	// Typed-ahead keys arrive as one run of runes. Outside a form each rune
	// is a hotkey of its own, and a form opened by one of them receives the
	// rest.
	if msg.Type == tea.KeyRunes && !msg.Paste && len(msg.Runes) > 1 {
		first, cmd := m.updateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: msg.Runes[:1]})
		rest, restCmd := first.(vaultScreen).updateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: msg.Runes[1:]})
		return rest, tea.Batch(cmd, restCmd)
	}

	if m.mode == modeConfirmDelete {
		switch {
		case key.Matches(msg, keys.yes):
			m.mode = modeBrowse
			m.pending++
			return m, m.cmdDelete(m.target.ID)
		case key.Matches(msg, keys.no):
			m.mode = modeBrowse
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitRequested = true
		return m.settle(nil)
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.entries)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.add):
		m.mode = modeAdd
		m.form = newForm("New entry",
			question{label: labelURL},
			question{label: labelUsername},
			question{label: labelPassword, secret: true},
		)
	case key.Matches(msg, keys.edit):
		entry, ok := m.current()
		if !ok {
			return m, nil
		}
		url, username, password := entry.URL, entry.Username, entry.Password
		m.target = entry
		m.mode = modeEdit
		m.form = newForm("Edit "+entry.URL,
			question{label: labelURL, dst: &url},
			question{label: labelUsername, dst: &username},
			question{label: labelPassword, secret: true, dst: &password},
		)
	case key.Matches(msg, keys.delete):
		entry, ok := m.current()
		if !ok {
			return m, nil
		}
		m.target = entry
		m.mode = modeConfirmDelete
	case key.Matches(msg, keys.copy):
		entry, ok := m.current()
		if !ok {
			return m, nil
		}
		if err := m.clipboard.WriteAll(entry.Password); err != nil {
			m.fail("copy password", err)
			return m, nil
		}
		m.status = app.MsgCopied
		m.errMsg = ""
	case key.Matches(msg, keys.reveal):
		m.reveal = !m.reveal
	case key.Matches(msg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.pending++
		return m, tea.Batch(m.spinner.Tick, m.cmdSync())
	}

	return m, nil
}

func (m vaultScreen) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)

	switch {
	case m.form.canceled:
		m.mode = modeBrowse
		return m, nil
	case !m.form.submitted:
		return m, cmd
	}

	answers := m.form.answers()
	url, username, password := answers[labelURL], answers[labelUsername], answers[labelPassword]

	mode := m.mode
	m.mode = modeBrowse
	m.pending++
	if mode == modeAdd {
		return m, m.cmdAdd(url, username, password)
	}
	return m, m.cmdEdit(m.target.ID, url, username, password)
}

// settle quits once a requested quit has no vault operation left to wait
// for.
func (m vaultScreen) settle(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.quitRequested && m.pending <= 0 {
		m.quit = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m *vaultScreen) reload() tea.Cmd {
	if m.quitRequested {
		return nil
	}
	m.pending++
	return m.cmdLoad()
}

func (m *vaultScreen) fail(action string, err error) {
	m.logger.Err(err).Str("func", "vaultScreen.Update").Str("action", action).Msg("vault screen action failed")
	m.errMsg = userMessage(err)
	m.status = ""
}

func (m *vaultScreen) moveToSelected() {
	if m.selectID != "" {
		for i, e := range m.entries {
			if e.ID == m.selectID {
				m.idx = i
			}
		}
		m.selectID = ""
	}
	m.idx = max(0, min(m.idx, len(m.entries)-1))
}

func (m vaultScreen) current() (models.Entry, bool) {
	if m.idx < 0 || m.idx >= len(m.entries) {
		return models.Entry{}, false
	}
	return m.entries[m.idx], true
}

func (m vaultScreen) cmdLoad() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		entries, err := listEntries(ctx, session)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m vaultScreen) cmdAdd(url, username, password string) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		id, err := addEntry(ctx, session, url, username, password)
		return entrySavedMsg{id: id, added: true, err: err}
	}
}

func (m vaultScreen) cmdEdit(id, url, username, password string) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		newID, err := editEntry(ctx, session, id, url, username, password)
		return entrySavedMsg{id: newID, err: err}
	}
}

func (m vaultScreen) cmdDelete(id string) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return entryDeletedMsg{err: deleteEntry(ctx, session, id)}
	}
}

func (m vaultScreen) cmdSync() tea.Cmd {
	ctx, session, coordinator := m.ctx, m.session, m.coordinator
	return func() tea.Msg {
		return syncDoneMsg{err: coordinator.Sync(ctx, session)}
	}
}

func (m vaultScreen) View() string {
	if m.quit {
		return ""
	}
	if m.mode == modeAdd || m.mode == modeEdit {
		return m.form.view()
	}

	title := "YAPM │ " + m.session.Account.Username
	if m.syncing {
		title += "  " + m.spinner.View()
	}

	var b strings.Builder
	switch {
	case !m.loaded:
		b.WriteString(app.MsgLoading)
	case len(m.entries) == 0:
		b.WriteString(app.MsgNoEntries)
	default:
		b.WriteString(entryTable(m.entries, m.reveal, m.idx))
	}

	if m.mode == modeConfirmDelete {
		b.WriteString("\n")
		b.WriteString(overlayStyle.Render(fmt.Sprintf(app.MsgConfirmDelete, m.target.URL, m.target.Username) + "\n\ny: yes    n: no"))
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage(title, b.String(),
		"a: add │ e: edit │ d: delete │ c: copy │ r: reveal │ s: sync │ q: log out")
}
