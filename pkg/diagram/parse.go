// Package diagram converts between tree-command style box-drawing diagrams
// and tree.Document values.
package diagram

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

// Structural glyphs of the diagram format.
const (
	vertical = '│'
	glyphs   = "├└│"
)

// IndentWidth is the number of columns per nesting level.
const IndentWidth = 4

// unnamed is used for lines that carry no recognizable label.
const unnamed = "unnamed"

var (
	// connector, optional whitespace, label, optional symlink target
	namePattern = regexp.MustCompile(`[├└]──[\s\p{Z}\x{FEFF}]*(.+?)(?:[\s\p{Z}\x{FEFF}]*->.*)?$`)
	leadPattern = regexp.MustCompile(`^[│├└─\s\p{Z}\x{FEFF}]+`)
)

// BlankLinePolicy decides what happens to tree lines that follow a blank line.
type BlankLinePolicy int

const (
	// ResumeOnGlyph keeps parsing when the line after a blank line still
	// carries a structural glyph, and stops at the first line that does not.
	ResumeOnGlyph BlankLinePolicy = iota
	// StopAtBlank ends the tree body at the first non-blank line after a
	// blank line, whatever it contains.
	StopAtBlank
)

func (p BlankLinePolicy) String() string {
	if p == StopAtBlank {
		return "stop"
	}
	return "resume"
}

// ParseBlankLinePolicy accepts "resume" or "stop".
func ParseBlankLinePolicy(s string) (BlankLinePolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "resume":
		return ResumeOnGlyph, true
	case "stop":
		return StopAtBlank, true
	}
	return ResumeOnGlyph, false
}

type parseOptions struct {
	blankLines BlankLinePolicy
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

// WithBlankLinePolicy selects how blank lines inside the input are treated.
func WithBlankLinePolicy(p BlankLinePolicy) ParseOption {
	return func(o *parseOptions) {
		o.blankLines = p
	}
}

// isSpace matches every Unicode space, including the byte order mark that
// some editors leave behind.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func isBlank(line string) bool {
	return strings.TrimFunc(line, isSpace) == ""
}

func hasGlyph(line string) bool {
	return strings.ContainsAny(line, glyphs)
}

// Parse reads a diagram. It never fails: unrecognizable lines are kept with a
// best-effort name, and empty input yields an empty document.
func Parse(text string, opts ...ParseOption) tree.Document {
	o := &parseOptions{}
	for _, opt := range opts {
		opt(o)
	}

	text = strings.TrimFunc(text, isSpace)
	if text == "" {
		return tree.Empty()
	}

	lines := filterLines(strings.Split(text, "\n"), o.blankLines)
	if len(lines) == 0 {
		return tree.Empty()
	}

	root := tree.DefaultRoot
	if first := strings.TrimFunc(lines[0], isSpace); !hasGlyph(first) {
		root = first
		lines = lines[1:]
	}

	return tree.NewDocument(root, build(lines)...)
}

// filterLines drops blank lines and cuts off trailing non-tree text such as
// the "N directories, M files" summary.
func filterLines(raw []string, policy BlankLinePolicy) []string {
	var lines []string
	sawBlank := false
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if isBlank(line) {
			sawBlank = true
			continue
		}
		if sawBlank {
			if policy == StopAtBlank || !hasGlyph(line) {
				break
			}
			sawBlank = false
		}
		lines = append(lines, line)
	}
	return lines
}

// entry is the mutable form of a node while the stack is being built.
type entry struct {
	id       tree.ID
	name     string
	dir      bool
	children []*entry
}

func (e *entry) node(parent tree.ID) *tree.Node {
	if !e.dir {
		return tree.NewFile(e.id, e.name, parent)
	}
	children := make([]*tree.Node, 0, len(e.children))
	for _, c := range e.children {
		children = append(children, c.node(e.id))
	}
	return tree.NewDirectory(e.id, e.name, parent, children...)
}

type frame struct {
	entry *entry
	depth int
}

func build(lines []string) []*tree.Node {
	depths := make([]int, len(lines))
	for i, line := range lines {
		depths[i] = Depth(line)
	}

	var (
		gen   tree.IDGen
		top   []*entry
		stack []frame
	)
	for i, line := range lines {
		depth := depths[i]
		e := &entry{
			id:   gen.Next(),
			name: Name(line),
			// lines are already free of blanks, so the next one decides
			dir: i+1 < len(lines) && depths[i+1] > depth,
		}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			top = append(top, e)
		} else {
			parent := stack[len(stack)-1].entry
			parent.children = append(parent.children, e)
		}
		if e.dir {
			stack = append(stack, frame{entry: e, depth: depth})
		}
	}

	nodes := make([]*tree.Node, 0, len(top))
	for _, e := range top {
		nodes = append(nodes, e.node(""))
	}
	return nodes
}

// Depth returns the nesting level of a diagram line: the number of leading
// vertical bars and spaces divided by IndentWidth.
func Depth(line string) int {
	width := 0
	for _, r := range line {
		if r == vertical || isSpace(r) {
			width++
			continue
		}
		break
	}
	return width / IndentWidth
}

// Name extracts the entry label from a diagram line, dropping any symlink
// target.
func Name(line string) string {
	if m := namePattern.FindStringSubmatch(line); m != nil {
		if name := strings.TrimFunc(m[1], isSpace); name != "" {
			return name
		}
	}
	name := strings.TrimFunc(leadPattern.ReplaceAllString(line, ""), isSpace)
	if name == "" {
		return unnamed
	}
	return name
}
