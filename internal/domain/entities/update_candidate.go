package entities

import (
	"context"
	"sort"

	logger "github.com/sirupsen/logrus"
)

// UpdateCandidate is a declared dependency with a newer version available.
// Candidates are derived for one run and never persisted.
type UpdateCandidate struct {
	Name            string   `json:"name"`
	CurrentRange    string   `json:"current"`
	ProposedVersion string   `json:"proposed"`
	Section         Section  `json:"section"`
	Tier            RiskTier `json:"tier"`
	DefaultSelected bool     `json:"defaultSelected"`
	SourceURL       string   `json:"sourceUrl,omitempty"`
}

// SourceURLLookup finds the repository URL of a package. An error only means
// the URL is unknown; it never fails the catalog.
type SourceURLLookup func(ctx context.Context, name string) (string, error)

// BuildCatalog joins the snapshot with the resolver output, classifies every
// candidate and orders them by ascending risk. Candidates of equal risk keep the
// order in which the resolver reported them.
func BuildCatalog(
	ctx context.Context,
	snapshot *DependencySnapshot,
	resolved []ResolvedCandidate,
	lookup SourceURLLookup,
) []UpdateCandidate {
	catalog := make([]UpdateCandidate, 0, len(resolved))
	seen := make(map[string]struct{}, len(resolved))

	for _, candidate := range resolved {
		if _, dup := seen[candidate.Name]; dup {
			continue
		}
		record, declared := snapshot.Lookup(candidate.Name)
		if !declared {
			logger.Debugf("Ignoring %q reported by the resolver: not declared in the manifest", candidate.Name)
			continue
		}
		seen[candidate.Name] = struct{}{}

		current := record.CurrentRange
		if current == "" {
			current = sentinelVersion
		}

		tier := ClassifyUpdate(current, candidate.LatestAllowed)
		catalog = append(catalog, UpdateCandidate{
			Name:            candidate.Name,
			CurrentRange:    current,
			ProposedVersion: candidate.LatestAllowed,
			Section:         record.Section,
			Tier:            tier,
			DefaultSelected: DefaultSelected(tier),
			SourceURL:       lookupSourceURL(ctx, lookup, candidate.Name),
		})
	}

	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].Tier < catalog[j].Tier
	})
	return catalog
}

func lookupSourceURL(ctx context.Context, lookup SourceURLLookup, name string) string {
	if lookup == nil {
		return ""
	}
	url, err := lookup(ctx, name)
	if err != nil {
		logger.Debugf("No source URL for %q: %v", name, err)
		return ""
	}
	return url
}
