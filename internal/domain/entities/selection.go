package entities

import (
	"fmt"
	"sort"
)

// SelectionResult is the set of package names the user confirmed.
type SelectionResult struct {
	names map[string]struct{}
}

// NewSelectionResult builds a selection from names; duplicates collapse.
func NewSelectionResult(names ...string) SelectionResult {
	return SelectionResult{names: toSet(names)}
}

// Contains reports whether name was selected.
func (s SelectionResult) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of selected names.
func (s SelectionResult) Len() int { return len(s.names) }

// IsEmpty reports whether nothing was selected.
func (s SelectionResult) IsEmpty() bool { return len(s.names) == 0 }

// Names returns the selected names sorted alphabetically.
func (s SelectionResult) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultSelected reports whether a tier is pre-checked in the selection prompt.
// Only updates that semver promises to be compatible are opted in.
func DefaultSelected(tier RiskTier) bool {
	return tier == TierPatch || tier == TierMinor
}

// DefaultSelection returns the names of every default-selected candidate.
func DefaultSelection(catalog []UpdateCandidate) SelectionResult {
	names := make([]string, 0, len(catalog))
	for _, candidate := range catalog {
		if candidate.DefaultSelected {
			names = append(names, candidate.Name)
		}
	}
	return NewSelectionResult(names...)
}

// ValidateSelection checks that every selected name belongs to the catalog.
func ValidateSelection(catalog []UpdateCandidate, selection SelectionResult) error {
	offered := make(map[string]struct{}, len(catalog))
	for _, candidate := range catalog {
		offered[candidate.Name] = struct{}{}
	}
	for _, name := range selection.Names() {
		if _, ok := offered[name]; !ok {
			return fmt.Errorf("%w: %q", ErrSelectionOutsideCatalog, name)
		}
	}
	return nil
}

// SelectedCandidates returns the catalog entries that were selected, in catalog order.
func SelectedCandidates(catalog []UpdateCandidate, selection SelectionResult) []UpdateCandidate {
	result := make([]UpdateCandidate, 0, selection.Len())
	for _, candidate := range catalog {
		if selection.Contains(candidate.Name) {
			result = append(result, candidate)
		}
	}
	return result
}
