// Package changelog serves the bot's release notes from a YAML file.
package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one dated release.
type Entry struct {
	Date    string   `yaml:"date"`
	Changes []string `yaml:"changes"`
}

// Changelog is the list of entries, newest first.
type Changelog struct {
	entries []Entry
}

// Load reads path. A missing file or an empty path yields an empty changelog.
func Load(path string) (*Changelog, error) {
	if path == "" {
		return &Changelog{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Changelog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read changelog: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode changelog: %w", err)
	}
	return &Changelog{entries: entries}, nil
}

// New builds a changelog from entries.
func New(entries []Entry) *Changelog {
	return &Changelog{entries: append([]Entry(nil), entries...)}
}

// Len returns the number of entries.
func (c *Changelog) Len() int {
	return len(c.entries)
}

// Summary renders one line per entry for the first n entries.
func (c *Changelog) Summary(n int) []string {
	if n > len(c.entries) {
		n = len(c.entries)
	}
	lines := make([]string, 0, n)
	for i, e := range c.entries[:n] {
		lines = append(lines, fmt.Sprintf("%d - %s - %d changes", i+1, e.Date, len(e.Changes)))
	}
	return lines
}

// Page renders the entry at the 1-based page number.
func (c *Changelog) Page(page int) []string {
	if page < 1 || page > len(c.entries) {
		return []string{fmt.Sprintf("No changes on page %d!", page)}
	}
	e := c.entries[page-1]
	lines := make([]string, 0, len(e.Changes)+1)
	lines = append(lines, fmt.Sprintf("Changes for %s:", e.Date))
	for _, change := range e.Changes {
		lines = append(lines, "- "+change)
	}
	return lines
}
