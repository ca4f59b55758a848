package diagram

import (
	"strings"

	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

const (
	connectorMid  = "├── "
	connectorLast = "└── "
	indentOpen    = "│   "
	indentClosed  = "    "
)

// Generate renders a document in canonical form: the root label followed by
// one connector line per node, depth first. There is no trailing newline.
func Generate(doc tree.Document) string {
	root := doc.Root()
	if root == "" {
		root = tree.DefaultRoot
	}
	lines := []string{root}
	lines = appendNodes(lines, doc.Nodes(), "")
	return strings.Join(lines, "\n")
}

// GenerateNode renders a single subtree with the node's own name as the
// label line.
func GenerateNode(n *tree.Node) string {
	lines := []string{n.Name()}
	lines = appendNodes(lines, n.Children(), "")
	return strings.Join(lines, "\n")
}

func appendNodes(lines []string, nodes []*tree.Node, prefix string) []string {
	for i, n := range nodes {
		lines = appendNode(lines, n, prefix, i == len(nodes)-1)
	}
	return lines
}

func appendNode(lines []string, n *tree.Node, prefix string, isLast bool) []string {
	connector, indent := connectorMid, indentOpen
	if isLast {
		connector, indent = connectorLast, indentClosed
	}
	lines = append(lines, prefix+connector+n.Name())
	if n.IsDir() && n.HasChildren() {
		lines = appendNodes(lines, n.Children(), prefix+indent)
	}
	return lines
}
