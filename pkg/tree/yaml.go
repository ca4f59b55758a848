package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlNode struct {
	ID       ID          `yaml:"id"`
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Expanded bool        `yaml:"expanded"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

type yamlDocument struct {
	Root   string      `yaml:"root"`
	NextID int         `yaml:"next_id"`
	Nodes  []*yamlNode `yaml:"nodes"`
}

// MarshalYAML encodes the document as a nested node list.
func (d Document) MarshalYAML() (interface{}, error) {
	return yamlDocument{
		Root:   d.root,
		NextID: d.nextID,
		Nodes:  toYAML(d.nodes),
	}, nil
}

func toYAML(nodes []*Node) []*yamlNode {
	out := make([]*yamlNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &yamlNode{
			ID:       n.id,
			Name:     n.name,
			Kind:     n.kind.String(),
			Expanded: n.expanded,
			Children: toYAML(n.children),
		})
	}
	return out
}

// UnmarshalYAML decodes a document written by MarshalYAML. Parent references
// are rebuilt from the nesting, file children are dropped and ids must be
// unique.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var raw yamlDocument
	if err := value.Decode(&raw); err != nil {
		return err
	}

	seen := make(map[ID]bool)
	var build func(in []*yamlNode, parent ID) ([]*Node, error)
	build = func(in []*yamlNode, parent ID) ([]*Node, error) {
		var out []*Node
		for _, yn := range in {
			if yn == nil {
				continue
			}
			if yn.ID == "" {
				return nil, fmt.Errorf("node %q has no id", yn.Name)
			}
			if seen[yn.ID] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateID, yn.ID)
			}
			seen[yn.ID] = true
			kind, err := ParseKind(yn.Kind)
			if err != nil {
				return nil, err
			}
			n := &Node{id: yn.ID, name: yn.Name, kind: kind, parent: parent, expanded: yn.Expanded}
			if kind == Directory {
				if n.children, err = build(yn.Children, yn.ID); err != nil {
					return nil, err
				}
			}
			out = append(out, n)
		}
		return out, nil
	}

	nodes, err := build(raw.Nodes, "")
	if err != nil {
		return err
	}
	root := raw.Root
	if root == "" {
		root = DefaultRoot
	}
	*d = Document{root: root, nodes: nodes, nextID: max(raw.NextID, nextFree(nodes))}
	return nil
}

// Encode renders the document as YAML.
func Encode(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Decode parses YAML produced by Encode.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
