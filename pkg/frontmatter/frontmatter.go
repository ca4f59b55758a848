package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	frontmatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?(.*)`)
	fencePattern       = regexp.MustCompile("(?s)^\\s*```[^\\n]*\\n(.*?)\\n?```\\s*$")
)

// Frontmatter represents the metadata block at the top of a diagram file
type Frontmatter struct {
	Title    string   `yaml:"title"`
	Root     string   `yaml:"root,omitempty"` // Overrides the diagram's own root line
	Tags     []string `yaml:"tags,flow"`
	Created  string   `yaml:"created"`
	Modified string   `yaml:"modified"`
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		// No frontmatter found
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Ensure arrays are never nil
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	return &fm, matches[2], nil
}

// Build creates the YAML frontmatter string from a Frontmatter struct
func Build(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", formatYAMLScalar(fm.Title)))
	if fm.Root != "" {
		sb.WriteString(fmt.Sprintf("root: %s\n", formatYAMLScalar(fm.Root)))
	}
	sb.WriteString(fmt.Sprintf("tags: %s\n", formatYAMLArray(fm.Tags)))
	sb.WriteString(fmt.Sprintf("created: %s\n", fm.Created))
	sb.WriteString(fmt.Sprintf("modified: %s\n", fm.Modified))
	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and a diagram into a complete file. The
// diagram is fenced so markdown renderers keep its alignment.
func BuildContent(fm *Frontmatter, diagram string) string {
	return Build(fm) + "\n\n```\n" + strings.TrimRight(diagram, "\n") + "\n```\n"
}

// Diagram returns the diagram text of a body, removing a surrounding code
// fence if there is one.
func Diagram(body string) string {
	if m := fencePattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return body
}

// FormatTimestamp formats a time.Time into the standard frontmatter timestamp format
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// ParseTimestamp parses a frontmatter timestamp string into time.Time
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", s)
}

func formatYAMLScalar(s string) string {
	if s == "" || needsQuoting(s) || strings.TrimSpace(s) != s {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// formatYAMLArray formats a string slice as a YAML flow-style array
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	quotedItems := make([]string, len(items))
	for i, item := range items {
		if needsQuoting(item) {
			quotedItems[i] = fmt.Sprintf("%q", item)
		} else {
			quotedItems[i] = item
		}
	}

	return fmt.Sprintf("[%s]", strings.Join(quotedItems, ", "))
}

// needsQuoting checks if a string needs to be quoted in YAML
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, ",:[]{}\"'#&*!|>%@`") || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "?")
}
