package editor

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

const layout = `web
├── src
│   └── app.ts
└── package.json`

func newTestModel(t *testing.T) (Model, *service.Service) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	svc, err := service.New(&service.Config{
		DataDir:     filepath.Join(t.TempDir(), "data"),
		DefaultRoot: ".",
	}, logrus.NewEntry(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	_, err = svc.Import("web", layout)
	require.NoError(t, err)

	m, err := New(svc, "web")
	require.NoError(t, err)
	return m, svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model. When a dialog closes, the message it emits is
// fed back too; other commands such as cursor blinks are dropped.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	wasOpen := m.prompt.Active || m.confirm.Active
	next, cmd := m.Update(msg)
	m = next.(Model)
	if wasOpen && !m.prompt.Active && !m.confirm.Active && cmd != nil {
		m = send(t, m, cmd())
	}
	return m
}

func storedDoc(t *testing.T, svc *service.Service) tree.Document {
	t.Helper()
	st, err := svc.Store()
	require.NoError(t, err)
	doc, err := st.Get("web")
	require.NoError(t, err)
	return doc
}

func stored(t *testing.T, svc *service.Service) string {
	t.Helper()
	return diagram.Generate(storedDoc(t, svc))
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, "src", m.selected().Name())

	m = send(t, m, runes("j"))
	assert.Equal(t, "app.ts", m.selected().Name())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "package.json", m.selected().Name())
	m = send(t, m, runes("j"))
	assert.Equal(t, "package.json", m.selected().Name())
	m = send(t, m, runes("k"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "src", m.selected().Name())
}

func TestToggleHidesChildren(t *testing.T) {
	m, svc := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.rows, 2)
	assert.False(t, m.selected().Expanded())

	doc := storedDoc(t, svc)
	assert.Equal(t, m.Document().Nodes()[0].Expanded(), doc.Nodes()[0].Expanded())

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Len(t, m.rows, 3)

	m = send(t, m, runes("e"))
	assert.Len(t, m.rows, 2)
	m = send(t, m, runes("e"))
	assert.Len(t, m.rows, 3)
}

func TestAddChildThroughPrompt(t *testing.T) {
	m, svc := newTestModel(t)

	m = send(t, m, runes("A"))
	require.True(t, m.prompt.Active)
	for _, r := range "lib" {
		m = send(t, m, runes(string(r)))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.prompt.Active)
	assert.Equal(t, "lib", m.selected().Name())
	assert.Equal(t, "web\n├── src\n│   ├── app.ts\n│   └── lib\n└── package.json", stored(t, svc))
}

func TestAddSiblingRejectsEmptyName(t *testing.T) {
	m, svc := newTestModel(t)

	m = send(t, m, runes("a"))
	require.True(t, m.prompt.Active)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.statusIsError)
	assert.Contains(t, m.statusMessage, "empty")
	assert.Equal(t, layout, stored(t, svc))
}

func TestRenamePrefillsName(t *testing.T) {
	m, svc := newTestModel(t)
	m = send(t, m, runes("j"))

	m = send(t, m, runes("r"))
	require.True(t, m.prompt.Active)
	assert.Equal(t, "app.ts", m.prompt.Value())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, runes("go"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "app.go", m.selected().Name())
	assert.Equal(t, "web\n├── src\n│   └── app.go\n└── package.json", stored(t, svc))
}

func TestDeleteAsksFirst(t *testing.T) {
	m, svc := newTestModel(t)

	m = send(t, m, runes("d"))
	require.True(t, m.confirm.Active)
	m = send(t, m, runes("n"))
	assert.False(t, m.confirm.Active)
	assert.Equal(t, layout, stored(t, svc))

	m = send(t, m, runes("d"))
	m = send(t, m, runes("y"))
	assert.Equal(t, "web\n└── package.json", stored(t, svc))
	assert.Equal(t, "package.json", m.selected().Name())
}

func TestMoveKeepsSelection(t *testing.T) {
	m, svc := newTestModel(t)

	m = send(t, m, runes("J"))
	assert.Equal(t, "src", m.selected().Name())
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, "web\n├── package.json\n└── src\n    └── app.ts", stored(t, svc))

	m = send(t, m, runes("K"))
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, layout, stored(t, svc))
}

func TestViewRendersTree(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	assert.Contains(t, view, "atree: web")
	assert.Contains(t, view, "package.json")
	assert.Contains(t, view, "app.ts")

	m = send(t, m, runes("p"))
	assert.True(t, m.showPreview)
	assert.Contains(t, m.View(), "└── package.json")

	m = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	m = send(t, m, runes("j"))
	assert.Equal(t, 0, m.cursor)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestKeyMapBuildsOnBase(t *testing.T) {
	base := keys.Base.FullHelp()
	full := keys.FullHelp()
	require.Greater(t, len(full), len(base))
	assert.Equal(t, base, full[:len(base)])

	short := keys.ShortHelp()
	assert.Contains(t, short, keys.Help)
	assert.Contains(t, short, keys.Quit)
}
