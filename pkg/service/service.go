package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/frontmatter"
	"github.com/mattsolo1/grove-asciitree/pkg/store"
	"github.com/mattsolo1/grove-asciitree/pkg/tree"
)

const defaultCacheSize = 64

var (
	// ErrEmptyName is returned when a node or document name is blank.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNodeNotFound is returned when an edit names a node the document does not contain.
	ErrNodeNotFound = errors.New("node not found")

	// ErrExists is returned when creating a document under a name already in use.
	ErrExists = errors.New("document already exists")
)

// Service is the core document service
type Service struct {
	Config *Config
	Logger *logrus.Entry

	cache *lru.Cache[string, tree.Document]

	mu    sync.Mutex
	store *store.Store
}

// Config holds service configuration
type Config struct {
	DataDir         string
	DefaultRoot     string
	CacheSize       int
	BlankLinePolicy diagram.BlankLinePolicy
}

// New creates a new document service
func New(config *Config, logger *logrus.Entry) (*Service, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	size := config.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, tree.Document](size)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &Service{
		Config: config,
		Logger: logger.WithField("component", "service"),
		cache:  cache,
	}, nil
}

// Store returns the document store, opening it on first use. Commands that
// only parse text never touch the database.
func (s *Service) Store() (*store.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		st, err := store.New(s.Config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		s.store = st
		s.Logger.WithField("data_dir", s.Config.DataDir).Debug("Opened store")
	}
	return s.store, nil
}

// Parse reads diagram text, honouring frontmatter and the configured blank
// line policy. Nothing is stored.
func (s *Service) Parse(text string) (tree.Document, *frontmatter.Frontmatter, error) {
	fm, body, err := frontmatter.Parse(text)
	if err != nil {
		return tree.Document{}, nil, err
	}

	doc := diagram.Parse(frontmatter.Diagram(body), diagram.WithBlankLinePolicy(s.Config.BlankLinePolicy))
	if fm != nil {
		if root := strings.TrimSpace(fm.Root); root != "" {
			doc = tree.SetRoot(doc, root)
		}
	}
	return doc, fm, nil
}

// Import parses text and stores it under name, replacing any previous document
func (s *Service) Import(name, text string) (tree.Document, error) {
	name, err := cleanName(name)
	if err != nil {
		return tree.Document{}, err
	}

	doc, _, err := s.Parse(text)
	if err != nil {
		return tree.Document{}, fmt.Errorf("parse %s: %w", name, err)
	}

	if err := s.save(name, doc); err != nil {
		return tree.Document{}, err
	}
	return doc, nil
}

// New creates an empty document. An empty root uses the configured default.
func (s *Service) New(name, root string) (tree.Document, error) {
	name, err := cleanName(name)
	if err != nil {
		return tree.Document{}, err
	}

	st, err := s.Store()
	if err != nil {
		return tree.Document{}, err
	}
	exists, err := st.Exists(name)
	if err != nil {
		return tree.Document{}, fmt.Errorf("check document: %w", err)
	}
	if exists {
		return tree.Document{}, fmt.Errorf("%w: %s", ErrExists, name)
	}

	root = strings.TrimSpace(root)
	if root == "" {
		root = s.Config.DefaultRoot
	}
	doc := tree.Empty()
	if root != "" {
		doc = tree.SetRoot(doc, root)
	}

	if err := s.save(name, doc); err != nil {
		return tree.Document{}, err
	}
	return doc, nil
}

// Document returns a stored document, from the cache when possible
func (s *Service) Document(name string) (tree.Document, error) {
	if doc, ok := s.cache.Get(name); ok {
		return doc, nil
	}

	st, err := s.Store()
	if err != nil {
		return tree.Document{}, err
	}
	doc, err := st.Get(name)
	if err != nil {
		return tree.Document{}, err
	}
	s.cache.Add(name, doc)
	return doc, nil
}

// Render returns the canonical text of a stored document
func (s *Service) Render(name string) (string, error) {
	doc, err := s.Document(name)
	if err != nil {
		return "", err
	}
	return diagram.Generate(doc), nil
}

// RenderNode returns the canonical text of one subtree
func (s *Service) RenderNode(name string, id tree.ID) (string, error) {
	doc, err := s.Document(name)
	if err != nil {
		return "", err
	}
	loc, ok := tree.Find(doc, id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return diagram.GenerateNode(loc.Node), nil
}

// Apply loads a document, runs the edit on it and stores the result
func (s *Service) Apply(name string, edit Edit) (tree.Document, error) {
	doc, err := s.Document(name)
	if err != nil {
		return tree.Document{}, err
	}

	updated, err := edit(doc)
	if err != nil {
		return tree.Document{}, err
	}

	if err := s.save(name, updated); err != nil {
		return tree.Document{}, err
	}
	return updated, nil
}

// Insert adds a node and returns the id it was given
func (s *Service) Insert(name string, target tree.ID, asChild bool, nodeName string) (tree.Document, tree.ID, error) {
	var created tree.ID
	doc, err := s.Apply(name, insertNode(target, asChild, nodeName, &created))
	if err != nil {
		return tree.Document{}, "", err
	}
	return doc, created, nil
}

// List returns the stored documents
func (s *Service) List() ([]*store.Entry, error) {
	st, err := s.Store()
	if err != nil {
		return nil, err
	}
	return st.List()
}

// Remove deletes a stored document
func (s *Service) Remove(name string) error {
	st, err := s.Store()
	if err != nil {
		return err
	}
	if err := st.Remove(name); err != nil {
		return err
	}
	s.cache.Remove(name)
	s.Logger.WithField("document", name).Debug("Removed document")
	return nil
}

// RenameDocument moves a stored document to a new name
func (s *Service) RenameDocument(oldName, newName string) error {
	newName, err := cleanName(newName)
	if err != nil {
		return err
	}

	st, err := s.Store()
	if err != nil {
		return err
	}
	exists, err := st.Exists(newName)
	if err != nil {
		return fmt.Errorf("check document: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExists, newName)
	}

	if err := st.Rename(oldName, newName); err != nil {
		return err
	}
	s.cache.Remove(oldName)
	s.Logger.WithFields(logrus.Fields{
		"from": oldName,
		"to":   newName,
	}).Debug("Renamed document")
	return nil
}

// Search finds nodes by name across stored documents
func (s *Service) Search(query string, options ...SearchOption) ([]store.Match, error) {
	opts := &searchOptions{
		limit: 50,
	}
	for _, opt := range options {
		opt(opts)
	}

	st, err := s.Store()
	if err != nil {
		return nil, err
	}
	results, err := st.Search(query, &store.SearchOptions{
		Document: opts.document,
		Limit:    opts.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search store: %w", err)
	}
	return results, nil
}

// Export renders a stored document as a diagram file with frontmatter
func (s *Service) Export(name string) (string, error) {
	doc, err := s.Document(name)
	if err != nil {
		return "", err
	}
	st, err := s.Store()
	if err != nil {
		return "", err
	}
	entry, err := st.Stat(name)
	if err != nil {
		return "", err
	}

	fm := &frontmatter.Frontmatter{
		Title:    name,
		Tags:     []string{},
		Created:  frontmatter.FormatTimestamp(entry.CreatedAt.Local()),
		Modified: frontmatter.FormatTimestamp(entry.ModifiedAt.Local()),
	}
	return frontmatter.BuildContent(fm, diagram.Generate(doc)), nil
}

// Close closes the service
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return err
		}
		s.store = nil
	}
	return nil
}

func (s *Service) save(name string, doc tree.Document) error {
	st, err := s.Store()
	if err != nil {
		return err
	}

	start := time.Now()
	if err := st.Save(name, doc); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	s.cache.Add(name, doc)

	s.Logger.WithFields(logrus.Fields{
		"document": name,
		"nodes":    tree.Count(doc),
		"elapsed":  time.Since(start),
	}).Debug("Saved document")
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

type searchOptions struct {
	document string
	limit    int
}

type SearchOption func(*searchOptions)

// InDocument restricts a search to one document
func InDocument(name string) SearchOption {
	return func(o *searchOptions) {
		o.document = name
	}
}

func WithLimit(limit int) SearchOption {
	return func(o *searchOptions) {
		o.limit = limit
	}
}
