package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/domain/repositories"
)

const (
	latestTag       = "latest"
	maxErrorBodyLen = 512
)

var errPackageNotFound = errors.New("package not found in registry")

// packageDocument is the subset of the registry packument the resolver reads.
type packageDocument struct {
	Name       string                 `json:"name"`
	DistTags   map[string]string      `json:"dist-tags"`
	Versions   map[string]versionInfo `json:"versions"`
	Repository json.RawMessage        `json:"repository"`
	Homepage   string                 `json:"homepage"`
}

type versionInfo struct {
	Deprecated json.RawMessage `json:"deprecated"`
}

func (v versionInfo) isDeprecated() bool {
	raw := strings.TrimSpace(string(v.Deprecated))
	return raw != "" && raw != "false" && raw != `""` && raw != "null"
}

// RegistryResolverRepository resolves versions against an npm-compatible
// registry. Package documents fetched during Resolve are cached so that the
// source URL lookup that follows does not hit the registry again.
type RegistryResolverRepository struct {
	client *http.Client

	mu        sync.Mutex
	documents map[string]*packageDocument
	registry  string
	token     string
}

// NewRegistryResolverRepository creates a resolver using the given HTTP client.
func NewRegistryResolverRepository(client *http.Client) *RegistryResolverRepository {
	if client == nil {
		client = &http.Client{}
	}
	return &RegistryResolverRepository{
		client:    client,
		documents: make(map[string]*packageDocument),
		registry:  entities.DefaultRegistry,
	}
}

var (
	_ repositories.ResolverRepository  = (*RegistryResolverRepository)(nil)
	_ repositories.SourceURLRepository = (*RegistryResolverRepository)(nil)
)

// Resolve queries the registry for every dependency in the snapshot using at
// most settings.Concurrency parallel requests. Results keep snapshot order.
func (it *RegistryResolverRepository) Resolve(
	ctx context.Context,
	snapshot *entities.DependencySnapshot,
	settings *entities.Settings,
) ([]entities.ResolvedCandidate, error) {
	it.mu.Lock()
	it.registry = strings.TrimRight(settings.Registry, "/")
	it.token = settings.Token
	it.mu.Unlock()

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	records := snapshot.Records()
	results := make([]*entities.ResolvedCandidate, len(records))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(settings.Concurrency)

	for i, record := range records {
		if !isRegistrySpecifier(record.CurrentRange) {
			logger.Debugf("Skipping %q: %q is not a registry version specifier", record.Name, record.CurrentRange)
			continue
		}

		group.Go(func() error {
			doc, err := it.document(groupCtx, record.Name)
			if errors.Is(err, errPackageNotFound) {
				logger.Warnf("Skipping %q: not found in %s", record.Name, it.registryURL())
				return nil
			}
			if err != nil {
				return &entities.ResolutionError{Package: record.Name, Err: err}
			}

			version, ok := pickVersion(doc, record.CurrentRange, settings.Target)
			if !ok {
				return nil
			}
			results[i] = &entities.ResolvedCandidate{
				Name:          record.Name,
				LatestAllowed: keepRangeOperator(record.CurrentRange, version),
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	resolved := make([]entities.ResolvedCandidate, 0, len(records))
	for _, result := range results {
		if result != nil {
			resolved = append(resolved, *result)
		}
	}
	return resolved, nil
}

// SourceURL returns the repository or homepage URL of a package.
func (it *RegistryResolverRepository) SourceURL(ctx context.Context, name string) (string, error) {
	doc, err := it.document(ctx, name)
	if err != nil {
		return "", err
	}
	return sourceURLOf(doc)
}

func (it *RegistryResolverRepository) registryURL() string {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.registry
}

// document returns the cached package document, fetching it on first use.
func (it *RegistryResolverRepository) document(ctx context.Context, name string) (*packageDocument, error) {
	it.mu.Lock()
	doc, cached := it.documents[name]
	registry, token := it.registry, it.token
	it.mu.Unlock()
	if cached {
		return doc, nil
	}

	doc, err := it.fetch(ctx, registry, token, name)
	if err != nil {
		return nil, err
	}

	it.mu.Lock()
	it.documents[name] = doc
	it.mu.Unlock()
	return doc, nil
}

func (it *RegistryResolverRepository) fetch(
	ctx context.Context,
	registry, token, name string,
) (*packageDocument, error) {
	endpoint := registry + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errPackageNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, endpoint)
	}

	var doc packageDocument
	if decodeErr := json.NewDecoder(resp.Body).Decode(&doc); decodeErr != nil {
		return nil, fmt.Errorf("failed to parse registry response for %q: %w", name, decodeErr)
	}
	return &doc, nil
}

// pickVersion chooses the version to propose for a dependency. It returns
// false when the current specifier already points at that version or newer.
func pickVersion(doc *packageDocument, currentRange, target string) (string, bool) {
	latest := doc.DistTags[latestTag]
	chosen := latest

	current, currentErr := coerce(currentRange)
	if currentErr == nil && target != entities.TargetLatest {
		bounded, ok := highestWithin(doc, current, target)
		if !ok {
			return "", false
		}
		chosen = bounded
	}
	if chosen == "" {
		return "", false
	}

	chosenVersion, err := semver.NewVersion(chosen)
	if err != nil {
		// the registry reported something unusual; let the classifier judge it
		return chosen, chosen != strings.TrimLeft(strings.TrimSpace(currentRange), "^~>=")
	}
	if currentErr != nil {
		return chosenVersion.String(), true
	}
	if !chosenVersion.GreaterThan(current) {
		return "", false
	}
	return chosenVersion.String(), true
}

// highestWithin returns the highest published, non-deprecated release sharing
// the current major (target "minor") or major.minor (target "patch").
func highestWithin(doc *packageDocument, current *semver.Version, target string) (string, bool) {
	var expr string
	switch target {
	case entities.TargetMinor:
		expr = fmt.Sprintf("^%d", current.Major())
	case entities.TargetPatch:
		expr = fmt.Sprintf("~%d.%d", current.Major(), current.Minor())
	default:
		return "", false
	}

	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return "", false
	}

	var best *semver.Version
	for raw, info := range doc.Versions {
		version, parseErr := semver.NewVersion(raw)
		if parseErr != nil || info.isDeprecated() || !constraint.Check(version) {
			continue
		}
		if best == nil || version.GreaterThan(best) {
			best = version
		}
	}
	if best == nil {
		return "", false
	}
	return best.String(), true
}

// coerce parses the version embedded in a specifier the same way the classifier does.
func coerce(specifier string) (*semver.Version, error) {
	canonical, ok := entities.CoerceVersion(specifier)
	if !ok {
		return nil, fmt.Errorf("no version in %q", specifier)
	}
	return semver.NewVersion(canonical)
}

// keepRangeOperator carries the leading ^, ~ or >= of the current specifier
// over to the proposed version, so "^1.0.0" becomes "^1.3.0". Compound ranges
// get the bare version, since their upper bound no longer holds.
func keepRangeOperator(currentRange, version string) string {
	trimmed := strings.TrimSpace(currentRange)
	if isCompoundRange(trimmed) {
		return version
	}
	for _, operator := range []string{">=", "^", "~"} {
		if strings.HasPrefix(trimmed, operator) {
			return operator + version
		}
	}
	return version
}

// isCompoundRange reports whether a specifier combines several comparators,
// as in ">=1.2 <3.0.0", "1.x || 2.0.0" or "1 - 2.3.4". A lone operator
// separated by a space (">= 1.2.0") still counts as a single comparator.
func isCompoundRange(specifier string) bool {
	if strings.Contains(specifier, "||") {
		return true
	}

	comparators := 0
	for _, field := range strings.Fields(specifier) {
		if strings.Trim(field, "<>=~^") == "" {
			continue
		}
		comparators++
	}
	return comparators > 1
}

// isRegistrySpecifier filters out specifiers the registry cannot answer for:
// git/file/link/workspace/url/alias sources, dist-tags and wildcards.
func isRegistrySpecifier(specifier string) bool {
	spec := strings.TrimSpace(specifier)
	switch spec {
	case "", "*", "x", "X", latestTag:
		return false
	}

	for _, prefix := range []string{
		"git", "github:", "gitlab:", "bitbucket:", "file:", "link:", "workspace:",
		"http:", "https:", "npm:", "portal:", "patch:",
	} {
		if strings.HasPrefix(spec, prefix) {
			return false
		}
	}
	if strings.Contains(spec, "/") {
		return false // user/repo shorthand or local path
	}
	return strings.ContainsAny(spec, "0123456789")
}
