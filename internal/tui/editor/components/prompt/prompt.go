// Package prompt is a single-line text input dialog.
package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
)

// SubmittedMsg carries the text entered by the user.
type SubmittedMsg struct {
	Value string
}

// CancelledMsg is sent when the user dismisses the prompt.
type CancelledMsg struct{}

type Model struct {
	Active bool
	Title  string
	input  textinput.Model
	keys   keyMap
}

func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 40
	return Model{
		input: ti,
		keys:  defaultKeyMap,
	}
}

// Activate shows the prompt with value as the initial text.
func (m *Model) Activate(title, value string) tea.Cmd {
	m.Title = title
	m.Active = true
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) Value() string {
	return m.input.Value()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Active {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.Active = false
			m.input.Blur()
			value := m.input.Value()
			return m, func() tea.Msg { return SubmittedMsg{Value: value} }
		case key.Matches(msg, m.keys.Cancel):
			m.Active = false
			m.input.Blur()
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.Active {
		return ""
	}

	title := theme.DefaultTheme.Header.Render(m.Title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultTheme.Colors.Blue).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, m.input.View()))
}

type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var defaultKeyMap = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
