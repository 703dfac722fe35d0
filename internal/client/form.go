package client

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// question is one field of a form. The answer is written to dst when the
// form is submitted.
type question struct {
	label  string
	secret bool
	dst    *string
}

// formModel is a column of labelled text inputs. It is used on its own as a
// program (see formPage) and embedded in the login and vault screens.
type formModel struct {
	title     string
	questions []question
	inputs    []textinput.Model
	focus     int
	errMsg    string

	// validate runs on submit. A non-nil error keeps the form open and is
	// shown under the inputs.
	validate func(answers map[string]string) error

	submitted bool
	canceled  bool
}

func newForm(title string, questions ...question) formModel {
	inputs := make([]textinput.Model, len(questions))
	for i, q := range questions {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].Prompt = ""
		inputs[i].Cursor.SetMode(cursor.CursorStatic)
		if q.secret {
			inputs[i].EchoMode = textinput.EchoPassword
			inputs[i].EchoCharacter = '*'
		}
		if q.dst != nil {
			inputs[i].SetValue(*q.dst)
		}
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return formModel{title: title, questions: questions, inputs: inputs}
}

// answers returns the current values keyed by label. Secrets are returned
// as typed, everything else is trimmed.
func (m formModel) answers() map[string]string {
	out := make(map[string]string, len(m.inputs))
	for i, q := range m.questions {
		v := m.inputs[i].Value()
		if !q.secret {
			v = strings.TrimSpace(v)
		}
		out[q.label] = v
	}
	return out
}

// apply copies the answers into the question destinations.
func (m formModel) apply() {
	answers := m.answers()
	for _, q := range m.questions {
		if q.dst != nil {
			*q.dst = answers[q.label]
		}
	}
}

func (m formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.inputs) == 0 {
		return m, nil
	}

	// Runes are always text, even when they spell a key name like "up".
	switch {
	case keyMsg.Type == tea.KeyRunes:
	case key.Matches(keyMsg, keys.cancel):
		m.canceled = true
		return m, nil
	case key.Matches(keyMsg, keys.nextField):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(keyMsg, keys.prevField):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		if m.focus < len(m.inputs)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		if m.validate != nil {
			if err := m.validate(m.answers()); err != nil {
				m.errMsg = userMessage(err)
				return m, nil
			}
		}
		m.errMsg = ""
		m.submitted = true
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *formModel) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// reset clears the named field and moves the focus to it.
func (m *formModel) reset(label string) {
	for i, q := range m.questions {
		if q.label == label {
			m.inputs[i].SetValue("")
			m.setFocus(i)
			return
		}
	}
}

func (m formModel) view() string {
	width := 0
	for _, q := range m.questions {
		width = max(width, len(q.label))
	}

	var b strings.Builder
	for i, q := range m.questions {
		b.WriteString(labelStyle.Render(q.label + ":" + strings.Repeat(" ", width-len(q.label))))
		b.WriteString(" [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(m.title, strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: confirm │ esc: cancel")
}

// formPage runs a form as a program of its own. It quits once the form is
// submitted or canceled.
type formPage struct {
	form formModel
}

func (p formPage) Init() tea.Cmd { return nil }

func (p formPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.form, cmd = p.form.update(msg)
	if p.form.submitted || p.form.canceled {
		return p, tea.Quit
	}
	return p, cmd
}

func (p formPage) View() string {
	if p.form.submitted || p.form.canceled {
		return ""
	}
	return p.form.view()
}
