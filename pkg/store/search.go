package store

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

const defaultSearchLimit = 50

// SearchOptions narrows a node search
type SearchOptions struct {
	Document string
	Limit    int
}

// Match is a node whose name contains the search query
type Match struct {
	Document string
	NodeID   string
	Name     string
	Kind     string
	Path     string
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// escapeLike escapes LIKE wildcards so the query is matched literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Search finds nodes whose names contain query, ignoring case
func (s *Store) Search(query string, opts *SearchOptions) ([]Match, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	conditions := []string{`folded LIKE ? ESCAPE '\'`}
	args := []any{"%" + escapeLike(fold(query)) + "%"}

	if opts.Document != "" {
		conditions = append(conditions, "document = ?")
		args = append(args, opts.Document)
	}

	searchQuery := fmt.Sprintf(`
		SELECT document, node_id, name, kind, path
		FROM nodes
		WHERE %s
		ORDER BY document ASC, position ASC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, limit)

	rows, err := s.db.Query(searchQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search nodes: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Document, &m.NodeID, &m.Name, &m.Kind, &m.Path); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}
