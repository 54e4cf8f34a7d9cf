package entities

import (
	"fmt"
	"strings"
)

const (
	ChangelogFileName = "CHANGELOG.md"

	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	releasePrefix     = "## ["
	bulletPrefix      = "- "
)

// ChangelogEntries renders one Keep-a-Changelog bullet per applied update.
func ChangelogEntries(applied []UpdateCandidate) []string {
	entries := make([]string, 0, len(applied))
	for _, candidate := range applied {
		entries = append(entries, fmt.Sprintf(
			"%schanged the `%s` dependency from `%s` to `%s`",
			bulletPrefix, candidate.Name, candidate.CurrentRange, candidate.ProposedVersion,
		))
	}
	return entries
}

// InsertChangelogEntry adds entries under "## [Unreleased]" / "### Changed".
// Content without an Unreleased section is returned unchanged. A missing
// Changed subsection is created right below the Unreleased heading; otherwise
// entries go after its last bullet.
func InsertChangelogEntry(content string, entries []string) string {
	if len(entries) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	unreleased := indexOfLine(lines, 0, len(lines), unreleasedHeading)
	if unreleased < 0 {
		return content
	}

	end := len(lines)
	for i := unreleased + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), releasePrefix) {
			end = i
			break
		}
	}

	changed := indexOfLine(lines, unreleased+1, end, changedSubheading)
	if changed < 0 {
		block := append([]string{"", changedSubheading, ""}, entries...)
		return strings.Join(splice(lines, unreleased+1, block), "\n")
	}

	at := changed
	for i := changed + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, bulletPrefix) {
			break
		}
		at = i
	}
	return strings.Join(splice(lines, at+1, entries), "\n")
}

func indexOfLine(lines []string, from, to int, want string) int {
	for i := from; i < to; i++ {
		if strings.TrimSpace(lines[i]) == want {
			return i
		}
	}
	return -1
}

func splice(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	return append(result, lines[at:]...)
}
