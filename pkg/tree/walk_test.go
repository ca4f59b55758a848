package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkOrder(t *testing.T) {
	var visited []string
	Walk(sample(), func(n *Node, depth int) bool {
		visited = append(visited, n.Name())
		return n.Name() != "docs"
	})
	assert.Equal(t, []string{"folder", "file1.txt", "file2.txt", "docs", "notes.txt"}, visited)
}

func TestPath(t *testing.T) {
	doc := sample()
	assert.Equal(t, []string{"docs", "guide", "intro.md"}, Path(doc, "node-5"))
	assert.Equal(t, []string{"notes.txt"}, Path(doc, "node-6"))
	assert.Nil(t, Path(doc, "missing"))
}

func TestVisible(t *testing.T) {
	doc := Toggle(sample(), "node-3")
	rows := Visible(doc)

	var got []string
	for _, r := range rows {
		got = append(got, r.Node.Name())
	}
	assert.Equal(t, []string{"folder", "file1.txt", "file2.txt", "docs", "notes.txt"}, got)
	assert.Equal(t, 1, rows[1].Depth)
	assert.True(t, rows[2].IsLast)
	assert.True(t, rows[4].IsLast)
	assert.False(t, rows[3].IsLast)
}
