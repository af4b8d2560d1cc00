// Package phrase implements the templated phrase table that translates
// rustc diagnostic messages from English to Japanese.
//
// A phrase template mixes literal text with placeholders of the form
// {$name}. The source (English) template is compiled into an anchored
// matcher that matches a prefix of the input, captures each placeholder
// value, and captures any trailing remainder. On a match, the captured
// values are substituted into the target (Japanese) template and the
// remainder is appended verbatim:
//
//	source:  "error: {$name}"
//	target:  "エラー: {$name}"
//	input:   "error: foo, more text"
//	output:  "エラー: foo, more text"
//
// The table is ordered by descending source template length so that a
// longer, more specific phrase wins over a shorter phrase it textually
// contains. The first matching entry wins; no better match is searched
// for. This ordering is a semantic contract: changing it changes
// translation outcomes.
package phrase

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// defaultData is the built-in phrase table shipped with the binary.
//
//go:embed assets/translate.json
var defaultData []byte

// Entry is one source/target phrase pair. The JSON field names match
// the translate.json data format (en/ja).
type Entry struct {
	Source string `json:"en"`
	Target string `json:"ja"`
}

// Table is an immutable ordered phrase table with matchers compiled
// once at construction. A Table is safe for unsynchronized concurrent
// reads; it is never mutated after NewTable returns.
type Table struct {
	entries  []Entry
	matchers []*matcher
}

// NewTable builds a table from entries. Entries with an empty source or
// target are dropped, the rest are sorted by descending source template
// length (stable for equal lengths), and each source template is
// compiled. An entry whose template fails to compile is skipped; the
// remaining entries still translate.
func NewTable(entries []Entry) *Table {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Source == "" || e.Target == "" {
			continue
		}
		kept = append(kept, e)
	}

	// Longest source first. Stable so equal-length entries keep their
	// data-file order.
	sort.SliceStable(kept, func(i, j int) bool {
		return len(kept[i].Source) > len(kept[j].Source)
	})

	t := &Table{
		entries:  make([]Entry, 0, len(kept)),
		matchers: make([]*matcher, 0, len(kept)),
	}
	for _, e := range kept {
		m, err := compileTemplate(e.Source)
		if err != nil {
			continue
		}
		t.entries = append(t.entries, e)
		t.matchers = append(t.matchers, m)
	}
	return t
}

// Parse builds a table from raw translate.json data. Malformed data
// yields an empty table, so translation degrades to a pass-through
// rather than failing.
func Parse(data []byte) *Table {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return NewTable(nil)
	}
	return NewTable(entries)
}

// LoadFile builds a table from a translate.json file on disk, used when
// the configuration points at an external phrase file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading phrase file: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewTable(entries), nil
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// Default returns the table built from the embedded phrase data. The
// table is built on first use and shared afterwards.
func Default() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = Parse(defaultData)
	})
	return defaultTable
}

// Translate translates message using the table. Entries are tried in
// table order (longest source template first); the first successful
// prefix match wins. If no entry matches, message is returned
// unchanged.
func (t *Table) Translate(message string) string {
	for i, m := range t.matchers {
		if out, ok := m.apply(message, t.entries[i].Target); ok {
			return out
		}
	}
	return message
}

// Len returns the number of usable entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the table's entries in match order. The returned
// slice must not be modified.
func (t *Table) Entries() []Entry {
	return t.entries
}
