package entities

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// versionPattern matches the leftmost MAJOR[.MINOR[.PATCH]][-pre] not preceded by a digit.
var versionPattern = regexp.MustCompile( //nolint:gochecknoglobals // compiled once
	`(?:^|[^\d])(\d+)(?:\.(\d+))?(?:\.(\d+))?(-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?`,
)

// CoerceVersion extracts the first version found in a raw specifier such as
// "^1.2.0", ">=2", ">=1.2 <3.0.0" or "v3.1.4-beta.1" and returns it in the
// canonical "vMAJOR.MINOR.PATCH[-pre]" form understood by x/mod/semver.
// Missing components are padded with zeros, so ">=1.2 <3.0.0" yields v1.2.0.
// The boolean is false when nothing in the string looks like a version.
func CoerceVersion(raw string) (string, bool) {
	match := versionPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "", false
	}

	parts := []string{match[1], match[2], match[3]}
	for i, part := range parts {
		if part == "" {
			parts[i] = "0"
			continue
		}
		parts[i] = trimLeadingZeros(part)
	}
	candidate := "v" + strings.Join(parts, ".")
	if !semver.IsValid(candidate) {
		return "", false
	}

	if prerelease := match[4]; prerelease != "" && semver.IsValid(candidate+prerelease) {
		return semver.Canonical(candidate + prerelease), true
	}
	return candidate, true
}

// ClassifyUpdate returns the risk tier of moving from current to proposed.
// Parse failures degrade to TierIndeterminate; it never panics.
func ClassifyUpdate(current, proposed string) RiskTier {
	from, okFrom := CoerceVersion(current)
	to, okTo := CoerceVersion(proposed)
	if !okFrom || !okTo {
		return TierIndeterminate
	}

	switch diffVersions(from, to) {
	case "patch":
		return TierPatch
	case "minor":
		return TierMinor
	case "premajor":
		return TierPremajor
	case "major":
		return TierMajor
	default:
		return TierIndeterminate
	}
}

// diffVersions mirrors the conventional semver "diff" release type between two
// canonical versions. It returns "" when the versions are equal.
func diffVersions(a, b string) string {
	cmp := semver.Compare(a, b)
	if cmp == 0 {
		return ""
	}

	low, high := a, b
	if cmp > 0 {
		low, high = b, a
	}

	lowPre := semver.Prerelease(low) != ""
	highPre := semver.Prerelease(high) != ""
	lowParts := numericParts(low)
	highParts := numericParts(high)

	if lowPre && !highPre {
		// 1.0.0-rc.1 -> 1.x.y is always major
		if lowParts[1] == 0 && lowParts[2] == 0 {
			return "major"
		}
		if lowParts == highParts {
			if lowParts[1] != 0 && lowParts[2] == 0 {
				return "minor"
			}
			return "patch"
		}
	}

	prefix := ""
	if highPre {
		prefix = "pre"
	}

	switch {
	case lowParts[0] != highParts[0]:
		return prefix + "major"
	case lowParts[1] != highParts[1]:
		return prefix + "minor"
	case lowParts[2] != highParts[2]:
		return prefix + "patch"
	default:
		return "prerelease"
	}
}

// numericParts splits a canonical version into its MAJOR, MINOR and PATCH integers.
func numericParts(canonical string) [3]int {
	var parts [3]int
	core := strings.TrimPrefix(canonical, "v")
	if idx := strings.IndexAny(core, "-+"); idx >= 0 {
		core = core[:idx]
	}
	for i, field := range strings.SplitN(core, ".", 3) { //nolint:mnd // major.minor.patch
		parts[i], _ = strconv.Atoi(field)
	}
	return parts
}

func trimLeadingZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
