// Package skills holds the skill classification table consulted while aggregating.
package skills

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Entry identifies one skill by id, by name, or by both.
type Entry struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

// rawTable is the on-disk YAML shape.
type rawTable struct {
	IndirectHealing []Entry `yaml:"indirect_healing"`
}

// Table classifies skills whose healing is a by-product of dealing damage.
// Lookups are safe for concurrent use; Replace swaps the whole table atomically.
type Table struct {
	mu          sync.RWMutex
	ids         map[uint32]struct{}
	names       map[string]struct{}
	fingerprint string
}

// NewTable builds a table from a list of indirect healing skills.
// Entries with neither an id nor a name are ignored.
func NewTable(indirect []Entry) *Table {
	t := &Table{}
	t.Replace(indirect)
	return t
}

// LoadTable reads a YAML table from path. A missing file yields an empty table,
// mirroring a deployment that has not configured any indirect healing skills.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return NewTable(nil), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Warn("Skill table not found, indirect healing classification disabled", "path", path)
		return NewTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading skill table %s: %w", path, err)
	}

	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing skill table %s: %w", path, err)
	}

	for i, e := range raw.IndirectHealing {
		if e.ID == 0 && strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("skill table %s: entry %d needs an id or a name", path, i)
		}
	}

	t := NewTable(raw.IndirectHealing)
	t.fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))

	slog.Info("Loaded skill table",
		"path", path,
		"indirect_healing_skills", len(raw.IndirectHealing),
		"fingerprint", t.fingerprint)
	return t, nil
}

// Replace swaps the table contents.
func (t *Table) Replace(indirect []Entry) {
	ids := make(map[uint32]struct{})
	names := make(map[string]struct{})
	for _, e := range indirect {
		if e.ID != 0 {
			ids[e.ID] = struct{}{}
		}
		if name := strings.TrimSpace(e.Name); name != "" {
			names[name] = struct{}{}
		}
	}

	t.mu.Lock()
	t.ids = ids
	t.names = names
	t.mu.Unlock()
}

// IsSkillIndirectHealing reports whether the skill is listed by id or by exact name.
func (t *Table) IsSkillIndirectHealing(skillID uint32, skillName string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.ids[skillID]; ok {
		return true
	}
	_, ok := t.names[skillName]
	return ok
}

// Len returns the number of distinct ids and names in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids) + len(t.names)
}

// Fingerprint is the SHA-256 of the file the table was loaded from, empty for
// tables built in code.
func (t *Table) Fingerprint() string {
	return t.fingerprint
}
