package editor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-asciitree/internal/tui/editor/components/confirm"
	"github.com/mattsolo1/grove-asciitree/internal/tui/editor/components/prompt"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.ensureCursorVisible()
		return m, nil

	case confirm.ConfirmedMsg:
		id := tree.ID(msg.Subject)
		if m.apply(service.DeleteNode(id)) {
			m.setStatus(fmt.Sprintf("Deleted %s", id))
		}
		return m, nil

	case confirm.CancelledMsg:
		m.setStatus("Cancelled")
		return m, nil

	case prompt.SubmittedMsg:
		m.submit(msg.Value)
		return m, nil

	case prompt.CancelledMsg:
		m.pending = actionNone
		m.target = ""
		m.setStatus("Cancelled")
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.prompt.Active {
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	if m.prompt.Active {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// any key closes the help screen
	if m.help.ShowAll {
		m.help.Toggle()
		return m, nil
	}

	m.statusMessage = ""
	selected := m.selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Toggle):
		if selected != nil && selected.HasChildren() {
			m.apply(service.ToggleNode(selected.ID()))
		}

	case key.Matches(msg, m.keys.ToggleAll):
		m.apply(service.ToggleAll())

	case key.Matches(msg, m.keys.AddSibling):
		m.pending = actionAddSibling
		m.target = ""
		if selected != nil {
			m.target = selected.ID()
		}
		return m, m.prompt.Activate("New entry (names with a dot are files)", "")

	case key.Matches(msg, m.keys.AddChild):
		if selected == nil {
			return m, nil
		}
		m.pending = actionAddChild
		m.target = selected.ID()
		return m, m.prompt.Activate(fmt.Sprintf("New entry inside %s", selected.Name()), "")

	case key.Matches(msg, m.keys.Rename):
		if selected == nil {
			return m, nil
		}
		loc, ok := tree.Find(m.doc, selected.ID())
		if !ok {
			return m, nil
		}
		m.pending = actionRename
		m.target = loc.Node.ID()
		return m, m.prompt.Activate("Rename", loc.Node.Name())

	case key.Matches(msg, m.keys.Delete):
		if selected == nil {
			return m, nil
		}
		question := fmt.Sprintf("Delete %s?", selected.Name())
		if selected.HasChildren() {
			question = fmt.Sprintf("Delete %s and everything inside it?", selected.Name())
		}
		m.confirm.Activate(question, string(selected.ID()))

	case key.Matches(msg, m.keys.MoveUp):
		if selected != nil {
			m.apply(service.MoveNode(selected.ID(), tree.Up))
		}

	case key.Matches(msg, m.keys.MoveDown):
		if selected != nil {
			m.apply(service.MoveNode(selected.ID(), tree.Down))
		}

	case key.Matches(msg, m.keys.Preview):
		m.showPreview = !m.showPreview
	}

	return m, nil
}

// submit finishes the edit the prompt was opened for.
func (m *Model) submit(value string) {
	pending, target := m.pending, m.target
	m.pending = actionNone
	m.target = ""

	switch pending {
	case actionAddSibling, actionAddChild:
		doc, id, err := m.service.Insert(m.name, target, pending == actionAddChild, value)
		if err != nil {
			m.setError(err)
			return
		}
		m.setDocument(doc)
		m.selectID(id)
		m.setStatus(fmt.Sprintf("Added %s", id))

	case actionRename:
		if m.apply(service.RenameNode(target, value)) {
			m.setStatus(fmt.Sprintf("Renamed %s", target))
		}
	}
}
