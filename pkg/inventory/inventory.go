// Package inventory tracks pantry item counts in a JSON file and
// reconciles them against camera scans.
package inventory

import (
	"fmt"
	"sort"
	"strings"
)

// Changes describes how one inventory snapshot differs from the previous one.
type Changes struct {
	// Added holds items present now that were absent before, with counts.
	Added map[string]int `json:"added"`

	// Removed holds items that were tracked before and vanished entirely.
	Removed []string `json:"removed"`

	// ZeroItems holds items still tracked but counted at zero.
	ZeroItems []string `json:"zero_items"`
}

// Empty reports whether nothing changed and nothing ran out.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.ZeroItems) == 0
}

// Compare diffs two item maps. Items counted at zero in the new map are
// reported as ZeroItems rather than Removed, since a scan keeps known
// items around at zero instead of dropping them.
func Compare(old, current map[string]int) Changes {
	changes := Changes{Added: make(map[string]int)}

	for name, count := range current {
		if _, ok := old[name]; !ok {
			changes.Added[name] = count
		}
		if count == 0 {
			changes.ZeroItems = append(changes.ZeroItems, name)
		}
	}
	for name := range old {
		if _, ok := current[name]; !ok {
			changes.Removed = append(changes.Removed, name)
		}
	}

	sort.Strings(changes.Removed)
	sort.Strings(changes.ZeroItems)
	return changes
}

// FormatList renders an item map as one "name: count" line per item,
// sorted by name. Returns a placeholder message when empty.
func FormatList(items map[string]int) string {
	if len(items) == 0 {
		return "Inventory is empty."
	}

	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %d\n", name, items[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Summary renders the changes for a human reader.
func (c Changes) Summary() string {
	if c.Empty() {
		return "No changes detected."
	}

	var parts []string
	if len(c.Added) > 0 {
		names := make([]string, 0, len(c.Added))
		for name := range c.Added {
			names = append(names, name)
		}
		sort.Strings(names)
		parts = append(parts, "New: "+strings.Join(names, ", "))
	}
	if len(c.Removed) > 0 {
		parts = append(parts, "Gone: "+strings.Join(c.Removed, ", "))
	}
	if len(c.ZeroItems) > 0 {
		parts = append(parts, "Out of stock: "+strings.Join(c.ZeroItems, ", "))
	}
	return strings.Join(parts, "\n")
}
