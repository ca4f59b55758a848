package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

// ErrNotFound is returned when no document has the requested name.
var ErrNotFound = errors.New("document not found")

// Store persists documents by name in a SQLite database
type Store struct {
	db      *sql.DB
	dataDir string
}

// Entry summarizes a stored document
type Entry struct {
	Name       string
	Root       string
	Nodes      int
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// New opens (and creates if needed) the store in dataDir
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "atree.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{
		db:      db,
		dataDir: dataDir,
	}

	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return s, nil
}

// init creates the database schema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		body TEXT NOT NULL,
		diagram TEXT NOT NULL,
		node_count INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS nodes (
		document TEXT NOT NULL,
		node_id TEXT NOT NULL,
		name TEXT NOT NULL,
		folded TEXT NOT NULL,
		kind TEXT NOT NULL,
		path TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (document, node_id)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_modified ON documents(modified_at);
	CREATE INDEX IF NOT EXISTS idx_nodes_folded ON nodes(folded);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save inserts or replaces a document and reindexes its nodes
func (s *Store) Save(name string, doc tree.Document) error {
	body, err := tree.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	_, err = tx.Exec(`
	INSERT INTO documents (name, root, body, diagram, node_count, created_at, modified_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		root = excluded.root,
		body = excluded.body,
		diagram = excluded.diagram,
		node_count = excluded.node_count,
		modified_at = excluded.modified_at
	`, name, doc.Root(), string(body), diagram.Generate(doc), tree.Count(doc), now, now)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	if err := reindex(tx, name, doc); err != nil {
		return fmt.Errorf("index nodes: %w", err)
	}

	return tx.Commit()
}

// Get loads a document by name
func (s *Store) Get(name string) (tree.Document, error) {
	var body string
	err := s.db.QueryRow("SELECT body FROM documents WHERE name = ?", name).Scan(&body)
	if err == sql.ErrNoRows {
		return tree.Document{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return tree.Document{}, err
	}
	return tree.Decode([]byte(body))
}

// Diagram returns the canonical text stored alongside a document
func (s *Store) Diagram(name string) (string, error) {
	var text string
	err := s.db.QueryRow("SELECT diagram FROM documents WHERE name = ?", name).Scan(&text)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return text, err
}

// Exists reports whether a document is stored under name
func (s *Store) Exists(name string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM documents WHERE name = ?", name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Stat returns the summary of a single document
func (s *Store) Stat(name string) (*Entry, error) {
	e := &Entry{}
	err := s.db.QueryRow(`
	SELECT name, root, node_count, created_at, modified_at
	FROM documents WHERE name = ?
	`, name).Scan(&e.Name, &e.Root, &e.Nodes, &e.CreatedAt, &e.ModifiedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all stored documents, most recently modified first
func (s *Store) List() ([]*Entry, error) {
	rows, err := s.db.Query(`
	SELECT name, root, node_count, created_at, modified_at
	FROM documents ORDER BY modified_at DESC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.Name, &e.Root, &e.Nodes, &e.CreatedAt, &e.ModifiedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Remove deletes a document and its index rows
func (s *Store) Remove(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.Exec("DELETE FROM documents WHERE name = ?", name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if _, err := tx.Exec("DELETE FROM nodes WHERE document = ?", name); err != nil {
		return err
	}

	return tx.Commit()
}

// Rename moves a document to a new name
func (s *Store) Rename(oldName, newName string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.Exec("UPDATE documents SET name = ?, modified_at = ? WHERE name = ?", newName, time.Now(), oldName)
	if err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}
	if _, err := tx.Exec("UPDATE nodes SET document = ? WHERE document = ?", newName, oldName); err != nil {
		return err
	}

	return tx.Commit()
}

// Close closes the store database
func (s *Store) Close() error {
	return s.db.Close()
}

// reindex replaces the search rows of a document
func reindex(tx *sql.Tx, name string, doc tree.Document) error {
	if _, err := tx.Exec("DELETE FROM nodes WHERE document = ?", name); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
	INSERT INTO nodes (document, node_id, name, folded, kind, path, position)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var (
		position int
		execErr  error
		parents  []string
	)
	tree.Walk(doc, func(n *tree.Node, depth int) bool {
		if execErr != nil {
			return false
		}
		parents = append(parents[:depth], n.Name())
		_, execErr = stmt.Exec(name, string(n.ID()), n.Name(), fold(n.Name()),
			n.Kind().String(), strings.Join(parents, "/"), position)
		position++
		return true
	})
	return execErr
}
