package client

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendForm(m formModel, msgs ...tea.KeyMsg) formModel {
	for _, k := range msgs {
		m, _ = m.update(k)
	}
	return m
}

func TestForm_SubmitAppliesAnswers(t *testing.T) {
	var name, secret string
	m := newForm("Test", question{label: "Name", dst: &name}, question{label: "Secret", secret: true, dst: &secret})

	m = sendForm(m, typed("  alice  ", " s3cret ")...)

	require.True(t, m.submitted)
	m.apply()
	assert.Equal(t, "alice", name, "plain answers are trimmed")
	assert.Equal(t, " s3cret ", secret, "secrets are kept as typed")
}

func TestForm_PrefilledValues(t *testing.T) {
	url := "https://example.com"
	m := newForm("Edit", question{label: labelURL, dst: &url})

	m = sendForm(m, enterKey)

	assert.Equal(t, "https://example.com", m.answers()[labelURL])
}

func TestForm_MasksSecrets(t *testing.T) {
	m := newForm("Test", question{label: "Secret", secret: true})

	m = sendForm(m, text("hunter22"))

	assert.NotContains(t, m.view(), "hunter22")
	assert.Contains(t, m.view(), "********")
}

func TestForm_Navigation(t *testing.T) {
	m := newForm("Test", question{label: "A"}, question{label: "B"}, question{label: "C"})

	m = sendForm(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)

	m = sendForm(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, m.focus, "focus wraps around")

	m = sendForm(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.focus)
	assert.False(t, m.submitted)
}

func TestForm_RunesSpellingKeyNamesAreText(t *testing.T) {
	m := newForm("Test", question{label: "A"}, question{label: "B"})

	m = sendForm(m, text("down"), text("esc"))

	assert.Equal(t, 0, m.focus)
	assert.False(t, m.canceled)
	assert.Equal(t, "downesc", m.answers()["A"])
}

func TestForm_Cancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{escKey, ctrlD, {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			m := sendForm(newForm("Test", question{label: "A"}), k)
			assert.True(t, m.canceled)
			assert.False(t, m.submitted)
		})
	}
}

func TestForm_ValidationKeepsFormOpen(t *testing.T) {
	m := newForm("Test", question{label: "A"})
	m.validate = func(answers map[string]string) error {
		if answers["A"] != "ok" {
			return errPasswordsDoNotMatch
		}
		return nil
	}

	m = sendForm(m, typed("nope")...)
	assert.False(t, m.submitted)
	assert.Contains(t, m.view(), userMessage(errPasswordsDoNotMatch))

	m.reset("A")
	m = sendForm(m, typed("ok")...)
	assert.True(t, m.submitted)
	assert.Empty(t, m.errMsg)
}

func TestFormPage_QuitsWhenDone(t *testing.T) {
	d := newDriver(formPage{form: newForm("Test", question{label: "A"})})

	d.send(text("x"))
	assert.False(t, d.quit)

	d.send(enterKey)
	assert.True(t, d.quit)
	assert.True(t, d.model.(formPage).form.submitted)
}

func TestPasswordsMatch(t *testing.T) {
	assert.NoError(t, passwordsMatch(map[string]string{labelMasterPassword: "a", labelRepeatPassword: "a"}))
	assert.NoError(t, passwordsMatch(map[string]string{}), "nothing asked, nothing to compare")
	assert.ErrorIs(t, passwordsMatch(map[string]string{labelMasterPassword: "a", labelRepeatPassword: "b"}), errPasswordsDoNotMatch)
}
