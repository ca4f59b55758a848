package tree

// Walk visits every node in pre-order. Returning false from fn skips the
// node's subtree.
func Walk(doc Document, fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.children, depth+1)
			}
		}
	}
	walk(doc.nodes, 0)
}

// Count returns the total number of nodes.
func Count(doc Document) int {
	count := 0
	Walk(doc, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Path returns the names from the top level down to the node, or nil when
// the id is unknown.
func Path(doc Document, id ID) []string {
	var search func(nodes []*Node, prefix []string) []string
	search = func(nodes []*Node, prefix []string) []string {
		for _, n := range nodes {
			p := append(prefix[:len(prefix):len(prefix)], n.name)
			if n.id == id {
				return p
			}
			if found := search(n.children, p); found != nil {
				return found
			}
		}
		return nil
	}
	return search(doc.nodes, nil)
}

// Row is one line of the interactive view of a document.
type Row struct {
	Node   *Node
	Depth  int
	IsLast bool
}

// Visible flattens the document in display order, skipping the children of
// collapsed nodes.
func Visible(doc Document) []Row {
	var rows []Row
	var visit func(nodes []*Node, depth int)
	visit = func(nodes []*Node, depth int) {
		for i, n := range nodes {
			rows = append(rows, Row{Node: n, Depth: depth, IsLast: i == len(nodes)-1})
			if n.expanded {
				visit(n.children, depth+1)
			}
		}
	}
	visit(doc.nodes, 0)
	return rows
}
