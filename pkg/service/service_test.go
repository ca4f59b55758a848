package service

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/frontmatter"
	"github.com/mattsolo1/grove-asciitree/pkg/store"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

const layout = `app
├── cmd
│   └── main.go
└── go.mod`

func newTestService(t *testing.T) (*Service, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	svc, err := New(&Config{
		DataDir:     filepath.Join(t.TempDir(), "data"),
		DefaultRoot: ".",
		CacheSize:   2,
	}, logrus.NewEntry(logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, hook
}

func TestImportAndRender(t *testing.T) {
	svc, hook := newTestService(t)

	doc, err := svc.Import("app", layout)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Count(doc))

	text, err := svc.Render("app")
	require.NoError(t, err)
	assert.Equal(t, layout, text)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Saved document", entry.Message)
	assert.Equal(t, "app", entry.Data["document"])
	assert.Equal(t, "service", entry.Data["component"])

	_, err = svc.Import("  ", layout)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestStoreOpensOnFirstUse(t *testing.T) {
	svc, hook := newTestService(t)
	dbPath := filepath.Join(svc.Config.DataDir, "atree.db")

	doc, _, err := svc.Parse(layout)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Count(doc))
	assert.NoFileExists(t, dbPath)
	assert.Empty(t, hook.AllEntries())

	_, err = svc.Import("app", layout)
	require.NoError(t, err)
	assert.FileExists(t, dbPath)
	assert.Equal(t, "Opened store", hook.AllEntries()[0].Message)

	first, err := svc.Store()
	require.NoError(t, err)
	second, err := svc.Store()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestImportFrontmatter(t *testing.T) {
	svc, _ := newTestService(t)

	content := "---\ntitle: App\nroot: renamed\ntags: []\ncreated: 2024-01-01 00:00:00\nmodified: 2024-01-01 00:00:00\n---\n\n```\n" + layout + "\n```\n"
	doc, err := svc.Import("app", content)
	require.NoError(t, err)
	assert.Equal(t, "renamed", doc.Root())
	assert.Equal(t, 3, tree.Count(doc))

	_, err = svc.Import("bad", "---\ntitle: [oops\n---\n.")
	assert.Error(t, err)
}

func TestBlankLinePolicy(t *testing.T) {
	svc, _ := newTestService(t)
	text := ".\n├── a.txt\n\n└── b.txt"

	doc, _, err := svc.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Count(doc))

	svc.Config.BlankLinePolicy = diagram.StopAtBlank
	doc, _, err = svc.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Count(doc))
}

func TestNewDocument(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.New("empty", "")
	require.NoError(t, err)
	assert.Equal(t, ".", doc.Root())
	assert.True(t, doc.IsEmpty())

	_, err = svc.New("empty", "x")
	assert.ErrorIs(t, err, ErrExists)

	doc, err = svc.New("labelled", " site ")
	require.NoError(t, err)
	assert.Equal(t, "site", doc.Root())
}

func TestApplyPersists(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import("app", layout)
	require.NoError(t, err)

	_, id, err := svc.Insert("app", "node-0", true, "util")
	require.NoError(t, err)
	assert.Equal(t, tree.ID("node-3"), id)

	_, err = svc.Apply("app", RenameNode("node-2", "go.sum"))
	require.NoError(t, err)
	_, err = svc.Apply("app", MoveNode("node-2", tree.Up))
	require.NoError(t, err)
	_, err = svc.Apply("app", SetRootLabel("service"))
	require.NoError(t, err)

	// bypass the cache to prove the edits reached the store
	st, err := svc.Store()
	require.NoError(t, err)
	stored, err := st.Get("app")
	require.NoError(t, err)
	assert.Equal(t, "service\n├── go.sum\n└── cmd\n    ├── main.go\n    └── util", diagram.Generate(stored))
}

func TestEditErrors(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import("app", layout)
	require.NoError(t, err)

	tests := []struct {
		name    string
		edit    Edit
		wantErr error
	}{
		{"toggle unknown", ToggleNode("node-9"), ErrNodeNotFound},
		{"delete unknown", DeleteNode("node-9"), ErrNodeNotFound},
		{"move unknown", MoveNode("node-9", tree.Down), ErrNodeNotFound},
		{"rename empty", RenameNode("node-0", "  "), ErrEmptyName},
		{"rename unknown", RenameNode("node-9", "x"), ErrNodeNotFound},
		{"insert empty", InsertNode("node-0", false, ""), ErrEmptyName},
		{"insert child of unknown", InsertNode("node-9", true, "x"), ErrNodeNotFound},
		{"insert child without target", InsertNode("", true, "x"), ErrNodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply("app", tt.edit)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	text, err := svc.Render("app")
	require.NoError(t, err)
	assert.Equal(t, layout, text)

	_, err = svc.Apply("missing", ToggleAll())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEditsAreReusable(t *testing.T) {
	base := diagram.Parse(layout)

	tests := []struct {
		name string
		edit Edit
		want string
	}{
		{"rename", RenameNode("node-0", "  lib  "), "app\n├── lib\n│   └── main.go\n└── go.mod"},
		{"insert", InsertNode("node-2", false, " go.sum "), "app\n├── cmd\n│   └── main.go\n├── go.mod\n└── go.sum"},
		{"blank root", SetRootLabel("   "), ".\n├── cmd\n│   └── main.go\n└── go.mod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var wg sync.WaitGroup
			results := make([]string, 4)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					doc, err := tt.edit(base)
					if err == nil {
						results[i] = diagram.Generate(doc)
					}
				}(i)
			}
			wg.Wait()

			for _, got := range results {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, layout, diagram.Generate(base))
		})
	}
}

func TestInsertTopLevel(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.New("empty", "")
	require.NoError(t, err)

	doc, id, err := svc.Insert("empty", "", false, "README.md")
	require.NoError(t, err)
	assert.Equal(t, tree.ID("node-0"), id)
	assert.Equal(t, ".\n└── README.md", diagram.Generate(doc))
}

func TestToggleAndToggleAll(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import("app", layout)
	require.NoError(t, err)

	doc, err := svc.Apply("app", ToggleNode("node-0"))
	require.NoError(t, err)
	assert.False(t, tree.AllExpanded(doc))

	doc, err = svc.Apply("app", ToggleAll())
	require.NoError(t, err)
	assert.True(t, tree.AllExpanded(doc))

	doc, err = svc.Apply("app", ToggleAll())
	require.NoError(t, err)
	assert.False(t, tree.AllExpanded(doc))
}

func TestRenderNode(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import("app", layout)
	require.NoError(t, err)

	text, err := svc.RenderNode("app", "node-0")
	require.NoError(t, err)
	assert.Equal(t, "cmd\n└── main.go", text)

	_, err = svc.RenderNode("app", "node-7")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestRemoveRenameAndList(t *testing.T) {
	svc, _ := newTestService(t)
	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Import(name, layout)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Remove("a"))
	_, err := svc.Document("a")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	assert.ErrorIs(t, svc.RenameDocument("b", "c"), ErrExists)
	require.NoError(t, svc.RenameDocument("b", "d"))
	_, err = svc.Document("b")
	assert.ErrorIs(t, err, store.ErrNotFound)

	entries, err := svc.List()
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"c", "d"}, names)
}

func TestSearch(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import("app", layout)
	require.NoError(t, err)
	_, err = svc.Import("other", ".\n└── MAIN.GO")
	require.NoError(t, err)

	results, err := svc.Search("main")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Search("main", InDocument("other"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "MAIN.GO", results[0].Name)

	results, err = svc.Search("", WithLimit(1))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestExportRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import("app", layout)
	require.NoError(t, err)

	content, err := svc.Export("app")
	require.NoError(t, err)

	fm, _, err := frontmatter.Parse(content)
	require.NoError(t, err)
	require.NotNil(t, fm)
	assert.Equal(t, "app", fm.Title)

	doc, err := svc.Import("copy", content)
	require.NoError(t, err)
	assert.Equal(t, layout, diagram.Generate(doc))
}
