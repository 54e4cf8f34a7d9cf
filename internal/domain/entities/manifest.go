package entities

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ManifestFileName is the conventional name of the dependency manifest.
const ManifestFileName = "package.json"

// Manifest is a parsed package.json kept as raw bytes, so that every edit
// touches only the targeted values and the rest of the document is preserved.
type Manifest struct {
	raw []byte
}

// ParseManifest validates raw as a JSON object and wraps it.
func ParseManifest(raw []byte) (*Manifest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrManifestInvalid)
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("%w: top-level value must be an object", ErrManifestInvalid)
	}

	data := make([]byte, len(raw))
	copy(data, raw)
	return &Manifest{raw: data}, nil
}

// Bytes returns a copy of the manifest content.
func (m *Manifest) Bytes() []byte {
	data := make([]byte, len(m.raw))
	copy(data, m.raw)
	return data
}

// Snapshot reads both dependency sections in document order.
// Non-string specifiers are not dependencies the tool can update and are skipped.
func (m *Manifest) Snapshot() *DependencySnapshot {
	var records []DependencyRecord
	for _, section := range []Section{SectionDirect, SectionDevelopment} {
		gjson.GetBytes(m.raw, string(section)).ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.String {
				return true
			}
			records = append(records, DependencyRecord{
				Name:         key.String(),
				CurrentRange: value.String(),
				Section:      section,
			})
			return true
		})
	}
	return NewDependencySnapshot(records)
}

// Specifier returns the raw specifier of name within section.
func (m *Manifest) Specifier(section Section, name string) (string, bool) {
	result := gjson.GetBytes(m.raw, sectionPath(section, name))
	if !result.Exists() || result.Type != gjson.String {
		return "", false
	}
	return result.String(), true
}

// Apply writes the proposed version of every selected candidate into the section
// that declares it and returns the mutated manifest. The receiver is not modified.
func (m *Manifest) Apply(selection SelectionResult, catalog []UpdateCandidate) (*Manifest, error) {
	byName := make(map[string]UpdateCandidate, len(catalog))
	for _, candidate := range catalog {
		byName[candidate.Name] = candidate
	}
	for _, name := range selection.Names() {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrSelectionOutsideCatalog, name)
		}
	}

	data := m.Bytes()
	for _, candidate := range catalog {
		if !selection.Contains(candidate.Name) {
			continue
		}

		section, found := m.locate(candidate)
		if !found {
			return nil, fmt.Errorf("%w: %q is not declared in %s or %s",
				ErrMutationInconsistency, candidate.Name, SectionDirect, SectionDevelopment)
		}

		updated, err := sjson.SetBytes(data, sectionPath(section, candidate.Name), candidate.ProposedVersion)
		if err != nil {
			return nil, fmt.Errorf("failed to set %q: %w", candidate.Name, err)
		}
		data = updated
	}

	return &Manifest{raw: data}, nil
}

// locate finds the section holding the candidate, preferring the one it was read from.
func (m *Manifest) locate(candidate UpdateCandidate) (Section, bool) {
	order := []Section{SectionDirect, SectionDevelopment}
	if candidate.Section == SectionDevelopment {
		order = []Section{SectionDevelopment, SectionDirect}
	}
	for _, section := range order {
		if _, ok := m.Specifier(section, candidate.Name); ok {
			return section, true
		}
	}
	return "", false
}

func sectionPath(section Section, name string) string {
	return string(section) + "." + escapePathComponent(name)
}

// escapePathComponent escapes characters that gjson/sjson treat as path syntax.
// Package names such as "lodash.merge" or "@types/node" contain them.
func escapePathComponent(component string) string {
	var sb strings.Builder
	for i := range len(component) {
		c := component[i]
		if !isSafePathChar(c) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isSafePathChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '_' || c == '-' || c == ':' || c > '~'
}
