// Package editor is an interactive terminal editor for a stored tree
// document. Every change is saved through the service as soon as it is made.
package editor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"

	"github.com/mattsolo1/grove-asciitree/internal/tui/editor/components/confirm"
	"github.com/mattsolo1/grove-asciitree/internal/tui/editor/components/prompt"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

// action is the edit waiting on the prompt.
type action int

const (
	actionNone action = iota
	actionAddSibling
	actionAddChild
	actionRename
)

// Model is the main model for the tree editor TUI
type Model struct {
	service *service.Service
	name    string
	doc     tree.Document
	rows    []tree.Row

	cursor       int
	scrollOffset int
	width        int
	height       int

	keys    KeyMap
	help    help.Model
	confirm confirm.Model
	prompt  prompt.Model

	pending       action
	target        tree.ID
	showPreview   bool
	statusMessage string
	statusIsError bool
}

// New loads the named document and builds the editor around it.
func New(svc *service.Service, name string) (Model, error) {
	doc, err := svc.Document(name)
	if err != nil {
		return Model{}, fmt.Errorf("load %s: %w", name, err)
	}

	m := Model{
		service: svc,
		name:    name,
		keys:    keys,
		help:    help.NewBuilder().WithKeys(keys).WithTitle("atree editor - Help").Build(),
		confirm: confirm.New(),
		prompt:  prompt.New(),
	}
	m.setDocument(doc)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Document returns the document as last saved.
func (m Model) Document() tree.Document {
	return m.doc
}

// selected returns the node under the cursor, or nil for an empty document.
func (m Model) selected() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

// setDocument swaps in a new document, keeping the cursor on the same node
// when it is still visible.
func (m *Model) setDocument(doc tree.Document) {
	var current tree.ID
	if n := m.selected(); n != nil {
		current = n.ID()
	}

	m.doc = doc
	m.rows = tree.Visible(doc)

	if current != "" && m.selectID(current) {
		return
	}
	m.clampCursor()
}

// selectID moves the cursor to a visible node.
func (m *Model) selectID(id tree.ID) bool {
	for i, r := range m.rows {
		if r.Node.ID() == id {
			m.cursor = i
			m.ensureCursorVisible()
			return true
		}
	}
	return false
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) getViewportHeight() int {
	// header, root line, blank, status, help
	const chrome = 6
	if m.height <= chrome {
		return len(m.rows)
	}
	return m.height - chrome
}

func (m *Model) ensureCursorVisible() {
	viewportHeight := m.getViewportHeight()
	if viewportHeight <= 0 {
		m.scrollOffset = 0
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	m.statusMessage = err.Error()
	m.statusIsError = true
}

// apply runs an edit through the service and shows the result.
func (m *Model) apply(edit service.Edit) bool {
	doc, err := m.service.Apply(m.name, edit)
	if err != nil {
		m.setError(err)
		return false
	}
	m.setDocument(doc)
	return true
}
