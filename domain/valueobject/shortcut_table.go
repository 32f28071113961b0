package valueobject

import (
	"sort"
	"strings"
)

// ShortcutTable is an immutable mapping from informal place or timezone
// aliases to canonical IANA identifiers. Lookup is case-insensitive.
type ShortcutTable struct {
	aliases map[string]string
}

// NewShortcutTable creates a ShortcutTable from an alias map. Keys are
// lower-cased at construction; the input map is copied, not retained.
func NewShortcutTable(aliases map[string]string) ShortcutTable {
	table := make(map[string]string, len(aliases))
	for alias, identifier := range aliases {
		table[strings.ToLower(alias)] = identifier
	}
	return ShortcutTable{aliases: table}
}

// DefaultShortcutTable returns the built-in alias table covering US
// regional zones, major world cities, and UTC/GMT.
func DefaultShortcutTable() ShortcutTable {
	return NewShortcutTable(map[string]string{
		"nyc":       "US/Eastern",
		"ny":        "US/Eastern",
		"east":      "US/Eastern",
		"eastern":   "US/Eastern",
		"chicago":   "US/Central",
		"central":   "US/Central",
		"denver":    "US/Mountain",
		"mountain":  "US/Mountain",
		"la":        "US/Pacific",
		"west":      "US/Pacific",
		"pacific":   "US/Pacific",
		"london":    "Europe/London",
		"uk":        "Europe/London",
		"paris":     "Europe/Paris",
		"tokyo":     "Asia/Tokyo",
		"japan":     "Asia/Tokyo",
		"beijing":   "Asia/Shanghai",
		"china":     "Asia/Shanghai",
		"sydney":    "Australia/Sydney",
		"australia": "Australia/Sydney",
		"utc":       "UTC",
		"gmt":       "UTC",
	})
}

// Resolve maps an alias to its canonical identifier. On a miss the input
// is returned unchanged; validity of the result is the caller's concern.
func (s ShortcutTable) Resolve(identifier string) string {
	if canonical, ok := s.aliases[strings.ToLower(identifier)]; ok {
		return canonical
	}
	return identifier
}

// Has reports whether the input matches a known alias
func (s ShortcutTable) Has(identifier string) bool {
	_, ok := s.aliases[strings.ToLower(identifier)]
	return ok
}

// Aliases returns the known aliases in sorted order
func (s ShortcutTable) Aliases() []string {
	aliases := make([]string, 0, len(s.aliases))
	for alias := range s.aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Len returns the number of aliases in the table
func (s ShortcutTable) Len() int {
	return len(s.aliases)
}
