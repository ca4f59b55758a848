package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
)

var (
	dirStyle      = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Blue)
	errorStyle    = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Red)
	successStyle  = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Green)
	previewBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.DefaultTheme.Colors.Cyan).
			Padding(0, 1)
)

func (m Model) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	header := theme.DefaultTheme.Header.Render(fmt.Sprintf("atree: %s", m.name))

	body := m.renderTree()
	if m.showPreview {
		preview := previewBorder.Render(diagram.Generate(m.doc))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", preview)
	}

	parts := []string{header, "", body}

	switch {
	case m.confirm.Active:
		parts = append(parts, "", m.confirm.View())
	case m.prompt.Active:
		parts = append(parts, "", m.prompt.View())
	}

	if m.statusMessage != "" {
		style := successStyle
		if m.statusIsError {
			style = errorStyle
		}
		parts = append(parts, "", style.Render(m.statusMessage))
	}

	parts = append(parts, "", m.help.View())

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTree() string {
	var b strings.Builder

	b.WriteString("  " + m.doc.Root() + "\n")
	if len(m.rows) == 0 {
		b.WriteString(theme.DefaultTheme.Muted.Render("  (empty, press a to add an entry)"))
		return b.String()
	}

	// lastAt[d] records whether the ancestor at depth d was the last of its
	// siblings, which decides between a guide bar and blank indent.
	var lastAt []bool

	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := start + viewportHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i, row := range m.rows {
		lastAt = append(lastAt[:row.Depth], row.IsLast)
		if i < start || i >= end {
			continue
		}

		var prefix strings.Builder
		for d := 0; d < row.Depth; d++ {
			if lastAt[d] {
				prefix.WriteString("    ")
			} else {
				prefix.WriteString("│   ")
			}
		}
		if row.IsLast {
			prefix.WriteString("└── ")
		} else {
			prefix.WriteString("├── ")
		}

		n := row.Node
		name := n.Name()
		switch {
		case n.HasChildren() && n.Expanded():
			name = dirStyle.Render("▼ " + name)
		case n.HasChildren():
			name = dirStyle.Render("▶ " + name)
		case n.IsDir():
			name = dirStyle.Render(name + "/")
		}

		cursor := "  "
		line := prefix.String() + name
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if len(m.rows) > viewportHeight {
		b.WriteString(theme.DefaultTheme.Muted.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.rows))))
	}

	return strings.TrimRight(b.String(), "\n")
}
