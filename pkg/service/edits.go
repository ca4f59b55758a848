package service

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

// Edit transforms a document. Edits never modify their input.
type Edit func(doc tree.Document) (tree.Document, error)

func requireNode(doc tree.Document, id tree.ID) error {
	if _, ok := tree.Find(doc, id); !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return nil
}

// ToggleNode expands or collapses a node
func ToggleNode(id tree.ID) Edit {
	return func(doc tree.Document) (tree.Document, error) {
		if err := requireNode(doc, id); err != nil {
			return doc, err
		}
		return tree.Toggle(doc, id), nil
	}
}

// DeleteNode removes a node and everything below it
func DeleteNode(id tree.ID) Edit {
	return func(doc tree.Document) (tree.Document, error) {
		if err := requireNode(doc, id); err != nil {
			return doc, err
		}
		return tree.Delete(doc, id), nil
	}
}

// InsertNode adds a sibling after target, or a child of target when asChild
// is set. An empty sibling target appends to the top level.
func InsertNode(target tree.ID, asChild bool, name string) Edit {
	return insertNode(target, asChild, name, nil)
}

func insertNode(target tree.ID, asChild bool, name string, created *tree.ID) Edit {
	clean := strings.TrimSpace(name)
	return func(doc tree.Document) (tree.Document, error) {
		if clean == "" {
			return doc, ErrEmptyName
		}
		if target != "" || asChild {
			if err := requireNode(doc, target); err != nil {
				return doc, err
			}
		}

		updated, id := tree.Insert(doc, target, asChild, clean)
		if created != nil {
			*created = id
		}
		return updated, nil
	}
}

// RenameNode gives a node a new name. A dotted name turns it into a file.
func RenameNode(id tree.ID, name string) Edit {
	clean := strings.TrimSpace(name)
	return func(doc tree.Document) (tree.Document, error) {
		if clean == "" {
			return doc, ErrEmptyName
		}
		if err := requireNode(doc, id); err != nil {
			return doc, err
		}
		return tree.Rename(doc, id, clean), nil
	}
}

// MoveNode swaps a node with its neighbour
func MoveNode(id tree.ID, dir tree.Direction) Edit {
	return func(doc tree.Document) (tree.Document, error) {
		if err := requireNode(doc, id); err != nil {
			return doc, err
		}
		return tree.Move(doc, id, dir), nil
	}
}

func ToggleAll() Edit {
	return func(doc tree.Document) (tree.Document, error) {
		return tree.ToggleAll(doc), nil
	}
}

// SetRootLabel replaces the root label. A blank label resets it to ".".
func SetRootLabel(label string) Edit {
	root := strings.TrimSpace(label)
	if root == "" {
		root = tree.DefaultRoot
	}
	return func(doc tree.Document) (tree.Document, error) {
		return tree.SetRoot(doc, root), nil
	}
}
