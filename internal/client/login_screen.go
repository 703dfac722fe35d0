package client

import (
	"context"

	"github.com/YabaiTech/YAPM/internal/app"
	"github.com/YabaiTech/YAPM/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	labelIdentifier     = "Username or email"
	labelMasterPassword = "Master password"
)

type loginDoneMsg struct {
	session *service.Session
	err     error
}

// loginFunc opens a session for identifier and password.
type loginFunc func(ctx context.Context, identifier, password string) (*service.Session, error)

// loginScreen asks for whatever credentials are missing, logs in and then
// hands every message to the vault screen. Both run in one program so that
// keys typed ahead of the login reach the vault screen.
type loginScreen struct {
	ctx       context.Context
	login     loginFunc
	newScreen func(*service.Session) vaultScreen

	identifier string
	password   string
	asking     bool
	form       formModel

	pending bool
	queued  []tea.KeyMsg

	session *service.Session
	screen  vaultScreen
	err     error
	quit    bool
}

func newLoginScreen(ctx context.Context, identifier, password string, login loginFunc,
	newScreen func(*service.Session) vaultScreen) loginScreen {
	var questions []question
	if identifier == "" {
		questions = append(questions, question{label: labelIdentifier})
	}
	if password == "" {
		questions = append(questions, question{label: labelMasterPassword, secret: true})
	}

	return loginScreen{
		ctx:        ctx,
		login:      login,
		newScreen:  newScreen,
		identifier: identifier,
		password:   password,
		asking:     len(questions) > 0,
		form:       newForm("Log in to YAPM", questions...),
		pending:    len(questions) == 0,
	}
}

func (m loginScreen) Init() tea.Cmd {
	if m.asking {
		return nil
	}
	return m.cmdLogin(m.identifier, m.password)
}

func (m loginScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.session != nil {
		updated, cmd := m.screen.Update(msg)
		m.screen = updated.(vaultScreen)
		return m, cmd
	}

	switch msg := msg.(type) {
	case loginDoneMsg:
		m.pending = false
		queued := m.queued
		m.queued = nil

		if msg.err != nil {
			m.err = msg.err
			if !m.asking {
				m.quit = true
				return m, tea.Quit
			}
			m.form.submitted = false
			m.form.errMsg = userMessage(msg.err)
			m.form.reset(labelMasterPassword)
			return m.replay(queued)
		}

		m.err = nil
		m.session = msg.session
		m.screen = m.newScreen(msg.session)
		initCmd := m.screen.Init()
		model, cmd := m.replay(queued)
		return model, tea.Batch(initCmd, cmd)

	case tea.KeyMsg:
		if m.pending {
			m.queued = append(m.queued, msg)
			return m, nil
		}

		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		switch {
		case m.form.canceled:
			m.quit = true
			return m, tea.Quit
		case m.form.submitted:
			answers := m.form.answers()
			identifier, password := m.identifier, m.password
			if v, ok := answers[labelIdentifier]; ok {
				identifier = v
			}
			if v, ok := answers[labelMasterPassword]; ok {
				password = v
			}
			m.pending = true
			return m, m.cmdLogin(identifier, password)
		}
		return m, cmd
	}

	return m, nil
}

// replay feeds keys that arrived during the login to whatever is now
// receiving input.
func (m loginScreen) replay(queued []tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (m loginScreen) cmdLogin(identifier, password string) tea.Cmd {
	ctx, login := m.ctx, m.login
	return func() tea.Msg {
		session, err := login(ctx, identifier, password)
		return loginDoneMsg{session: session, err: err}
	}
}

func (m loginScreen) View() string {
	switch {
	case m.session != nil:
		return m.screen.View()
	case m.quit:
		return ""
	case !m.asking:
		return renderPage("Log in to YAPM", app.MsgLoggingIn, "")
	}

	view := m.form.view()
	if m.pending {
		view += "\n  " + app.MsgLoggingIn
	}
	return view
}
