package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind categorizes a node as a file or a directory.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind converts the textual form produced by String back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return File, nil
	case "directory", "dir":
		return Directory, nil
	}
	return File, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindForName infers the kind of a newly created entry from its name:
// anything containing a dot is a file.
func KindForName(name string) Kind {
	if strings.Contains(name, ".") {
		return File
	}
	return Directory
}

// ID identifies a node within a Document.
type ID string

const idPrefix = "node-"

func formatID(n int) ID {
	return ID(idPrefix + strconv.Itoa(n))
}

// seq returns the numeric suffix of an id in the node-<n> scheme.
func (id ID) seq() (int, bool) {
	s, ok := strings.CutPrefix(string(id), idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IDGen hands out ids in increasing order. It is scoped to a single parse
// or carried by a Document; there is no shared counter.
type IDGen struct {
	next int
}

// Next returns a fresh id.
func (g *IDGen) Next() ID {
	id := formatID(g.next)
	g.next++
	return id
}

// Node represents a single file or directory entry. Nodes are never modified
// after construction; edits build new nodes along the changed path.
type Node struct {
	id       ID
	name     string
	kind     Kind
	parent   ID
	expanded bool
	children []*Node
}

// NewFile creates a file node. Files never carry children.
func NewFile(id ID, name string, parent ID) *Node {
	return &Node{id: id, name: name, kind: File, parent: parent, expanded: true}
}

// NewDirectory creates an expanded directory node. The children are adopted
// as-is; their parent references are expected to point at id.
func NewDirectory(id ID, name string, parent ID, children ...*Node) *Node {
	return &Node{
		id:       id,
		name:     name,
		kind:     Directory,
		parent:   parent,
		expanded: true,
		children: children,
	}
}

func (n *Node) ID() ID { return n.id }
func (n *Node) Name() string { return n.name }
func (n *Node) Kind() Kind { return n.kind }
func (n *Node) IsDir() bool { return n.kind == Directory }
func (n *Node) ParentID() ID { return n.parent }
func (n *Node) Expanded() bool { return n.expanded }
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Children returns a copy of the node's ordered children.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) clone() *Node {
	c := *n
	return &c
}

// withChildren returns a copy of n holding children. A file is promoted to a
// directory when given children.
func (n *Node) withChildren(children []*Node) *Node {
	c := n.clone()
	c.children = children
	if len(children) > 0 {
		c.kind = Directory
	}
	return c
}

// Document is the editable unit: a free-text root label plus the top-level
// forest. Documents are values; every edit returns a new one.
type Document struct {
	root   string
	nodes  []*Node
	nextID int
}

// DefaultRoot is the label used when a diagram has none.
const DefaultRoot = "."

// Empty returns a document with the default root label and no nodes.
func Empty() Document {
	return Document{root: DefaultRoot}
}

// NewDocument builds a document from a root label and top-level nodes. Parent
// references are recomputed and the id counter continues past the highest
// node-<n> id present.
func NewDocument(root string, nodes ...*Node) Document {
	d := Document{root: root, nodes: relink(nodes, "")}
	d.nextID = nextFree(d.nodes)
	return d
}

func (d Document) Root() string { return d.root }

// Nodes returns a copy of the top-level nodes.
func (d Document) Nodes() []*Node {
	return append([]*Node(nil), d.nodes...)
}

// Len reports the number of top-level nodes.
func (d Document) Len() int { return len(d.nodes) }

// IsEmpty reports whether the document has no nodes.
func (d Document) IsEmpty() bool { return len(d.nodes) == 0 }

// relink rebuilds parent references below parent, copying only nodes whose
// reference was wrong and dropping any children a file might have been given.
func relink(nodes []*Node, parent ID) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		var children []*Node
		if n.kind == Directory {
			children = relink(n.children, n.id)
		}
		if n.parent == parent && sameNodes(children, n.children) {
			out[i] = n
			continue
		}
		c := n.clone()
		c.parent = parent
		c.children = children
		out[i] = c
	}
	return out
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func nextFree(nodes []*Node) int {
	next := 0
	var visit func([]*Node)
	visit = func(ns []*Node) {
		for _, n := range ns {
			if s, ok := n.id.seq(); ok && s >= next {
				next = s + 1
			}
			visit(n.children)
		}
	}
	visit(nodes)
	return next
}
