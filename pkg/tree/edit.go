package tree

import "strings"

// Direction selects the neighbour a node is swapped with by Move.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return Up, false
}

// Location describes where a node sits in a document.
type Location struct {
	Node     *Node
	Parent   *Node // nil for top-level nodes
	Siblings []*Node
	Index    int
}

// Find looks up a node by id. The returned Siblings slice is a copy.
func Find(doc Document, id ID) (Location, bool) {
	var search func(nodes []*Node, parent *Node) (Location, bool)
	search = func(nodes []*Node, parent *Node) (Location, bool) {
		for i, n := range nodes {
			if n.id == id {
				return Location{
					Node:     n,
					Parent:   parent,
					Siblings: append([]*Node(nil), nodes...),
					Index:    i,
				}, true
			}
			if loc, ok := search(n.children, n); ok {
				return loc, true
			}
		}
		return Location{}, false
	}
	if id == "" {
		return Location{}, false
	}
	return search(doc.nodes, nil)
}

// rewrite locates the sibling list holding id and replaces it with the result
// of fn. Only the nodes on the path from the top level to that list are
// copied; everything else is shared with the input.
func rewrite(nodes []*Node, id ID, fn func(siblings []*Node, i int) []*Node) ([]*Node, bool) {
	for i, n := range nodes {
		if n.id == id {
			return fn(nodes, i), true
		}
	}
	for i, n := range nodes {
		if len(n.children) == 0 {
			continue
		}
		children, ok := rewrite(n.children, id, fn)
		if !ok {
			continue
		}
		out := append([]*Node(nil), nodes...)
		out[i] = n.withChildren(children)
		return out, true
	}
	return nodes, false
}

// replace swaps the node with the given id for fn(node).
func replace(doc Document, id ID, fn func(n *Node) *Node) Document {
	nodes, ok := rewrite(doc.nodes, id, func(siblings []*Node, i int) []*Node {
		out := append([]*Node(nil), siblings...)
		out[i] = fn(siblings[i])
		return out
	})
	if !ok {
		return doc
	}
	doc.nodes = nodes
	return doc
}

// Toggle flips the expanded flag of a node.
func Toggle(doc Document, id ID) Document {
	return replace(doc, id, func(n *Node) *Node {
		c := n.clone()
		c.expanded = !n.expanded
		return c
	})
}

// Delete removes a node together with its subtree.
func Delete(doc Document, id ID) Document {
	nodes, ok := rewrite(doc.nodes, id, func(siblings []*Node, i int) []*Node {
		out := make([]*Node, 0, len(siblings)-1)
		out = append(out, siblings[:i]...)
		return append(out, siblings[i+1:]...)
	})
	if !ok {
		return doc
	}
	doc.nodes = nodes
	return doc
}

// Insert adds a node called name. As a sibling it lands right after target,
// or at the end of the top level when target is unknown. As a child it is
// appended to target, which becomes an expanded directory; an unknown target
// leaves the document unchanged. The id of the new node is returned, or ""
// when nothing was inserted.
func Insert(doc Document, target ID, asChild bool, name string) (Document, ID) {
	id := formatID(doc.nextID)
	kind := KindForName(name)

	if asChild {
		added := false
		doc = replace(doc, target, func(n *Node) *Node {
			added = true
			c := n.clone()
			c.kind = Directory
			c.expanded = true
			c.children = append(append([]*Node(nil), n.children...), newNode(id, name, kind, n.id))
			return c
		})
		if !added {
			return doc, ""
		}
		doc.nextID++
		return doc, id
	}

	nodes, ok := rewrite(doc.nodes, target, func(siblings []*Node, i int) []*Node {
		out := make([]*Node, 0, len(siblings)+1)
		out = append(out, siblings[:i+1]...)
		out = append(out, newNode(id, name, kind, siblings[i].parent))
		return append(out, siblings[i+1:]...)
	})
	if !ok {
		nodes = append(append([]*Node(nil), doc.nodes...), newNode(id, name, kind, ""))
	}
	doc.nodes = nodes
	doc.nextID++
	return doc, id
}

func newNode(id ID, name string, kind Kind, parent ID) *Node {
	if kind == File {
		return NewFile(id, name, parent)
	}
	return NewDirectory(id, name, parent)
}

// Rename changes a node's name. A dotted name turns the node into a file,
// discarding any children; otherwise the kind is left alone.
func Rename(doc Document, id ID, name string) Document {
	return replace(doc, id, func(n *Node) *Node {
		c := n.clone()
		c.name = name
		if KindForName(name) == File {
			c.kind = File
			c.children = nil
		}
		return c
	})
}

// Move swaps a node with its previous (Up) or next (Down) sibling. Moving
// past either end is a no-op.
func Move(doc Document, id ID, dir Direction) Document {
	nodes, ok := rewrite(doc.nodes, id, func(siblings []*Node, i int) []*Node {
		j := i - 1
		if dir == Down {
			j = i + 1
		}
		if j < 0 || j >= len(siblings) {
			return siblings
		}
		out := append([]*Node(nil), siblings...)
		out[i], out[j] = out[j], out[i]
		return out
	})
	if !ok {
		return doc
	}
	doc.nodes = nodes
	return doc
}

// SetRoot replaces the root label.
func SetRoot(doc Document, label string) Document {
	doc.root = label
	return doc
}

// AllExpanded reports whether every node with children is expanded, all the
// way down. Leaves count as expanded.
func AllExpanded(doc Document) bool {
	var check func(n *Node) bool
	check = func(n *Node) bool {
		if len(n.children) == 0 {
			return true
		}
		if !n.expanded {
			return false
		}
		for _, c := range n.children {
			if !check(c) {
				return false
			}
		}
		return true
	}
	for _, n := range doc.nodes {
		if !check(n) {
			return false
		}
	}
	return true
}

// SetAllExpanded sets the expanded flag on every node.
func SetAllExpanded(doc Document, expanded bool) Document {
	var set func(nodes []*Node) []*Node
	set = func(nodes []*Node) []*Node {
		if len(nodes) == 0 {
			return nodes
		}
		out := make([]*Node, len(nodes))
		for i, n := range nodes {
			c := n.clone()
			c.expanded = expanded
			c.children = set(n.children)
			out[i] = c
		}
		return out
	}
	doc.nodes = set(doc.nodes)
	return doc
}

// ToggleAll collapses everything when the whole document is expanded and
// expands everything otherwise.
func ToggleAll(doc Document) Document {
	return SetAllExpanded(doc, !AllExpanded(doc))
}
