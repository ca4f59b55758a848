// Package confirm is a yes/no dialog that reports back which subject it was
// opened for.
package confirm

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
)

// ConfirmedMsg is sent when the user accepts. Subject is the value passed to
// Activate.
type ConfirmedMsg struct {
	Subject string
}

// CancelledMsg is sent when the user declines or dismisses the dialog.
type CancelledMsg struct {
	Subject string
}

type Model struct {
	Active  bool
	Prompt  string
	Subject string
	keys    keyMap
}

func New() Model {
	return Model{keys: defaultKeyMap}
}

// Activate shows question and remembers subject until the dialog closes.
func (m *Model) Activate(question, subject string) {
	m.Prompt = question
	m.Subject = subject
	m.Active = true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.Active || !ok {
		return m, nil
	}

	subject := m.Subject
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.close()
		return m, func() tea.Msg { return ConfirmedMsg{Subject: subject} }
	case key.Matches(keyMsg, m.keys.Cancel):
		m.close()
		return m, func() tea.Msg { return CancelledMsg{Subject: subject} }
	}
	return m, nil
}

func (m *Model) close() {
	m.Active = false
	m.Prompt = ""
	m.Subject = ""
}

func (m Model) View() string {
	if !m.Active {
		return ""
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultTheme.Colors.Orange).
		Padding(0, 2).
		Render(m.Prompt)

	yes, no := m.keys.Confirm.Help(), m.keys.Cancel.Help()
	hint := theme.DefaultTheme.Muted.Copy().
		Width(lipgloss.Width(box)).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%s %s · %s %s", yes.Key, yes.Desc, no.Key, no.Desc))

	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}

type keyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var defaultKeyMap = keyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "delete"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "keep"),
	),
}
