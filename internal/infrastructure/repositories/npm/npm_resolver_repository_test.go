//go:build unit

package npm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/npm"
)

// packuments maps package names to registry documents.
var packuments = map[string]string{ //nolint:gochecknoglobals // test fixture
	"left-pad": `{
		"name": "left-pad",
		"dist-tags": {"latest": "1.3.0"},
		"versions": {"1.0.0": {}, "1.1.0": {}, "1.3.0": {}},
		"repository": {"type": "git", "url": "git+https://github.com/stevemao/left-pad.git"}
	}`,
	"express": `{
		"name": "express",
		"dist-tags": {"latest": "5.0.0", "next": "5.1.0-beta.1"},
		"versions": {"3.0.0": {}, "3.21.2": {}, "3.21.3": {"deprecated": "broken"}, "4.18.2": {}, "5.0.0": {}},
		"repository": "expressjs/express"
	}`,
	"@types/node": `{
		"name": "@types/node",
		"dist-tags": {"latest": "20.1.0"},
		"versions": {"18.0.0": {}, "18.19.1": {}, "20.1.0": {}},
		"homepage": "https://github.com/DefinitelyTyped/DefinitelyTyped"
	}`,
}

func newRegistry(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		doc, ok := packuments[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(server.Close)
	return server
}

func settingsFor(server *httptest.Server, target string) *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Registry = server.URL
	settings.Target = target
	return settings
}

func snapshotOf(pairs ...string) *entities.DependencySnapshot {
	records := make([]entities.DependencyRecord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		records = append(records, entities.DependencyRecord{
			Name: pairs[i], CurrentRange: pairs[i+1], Section: entities.SectionDirect,
		})
	}
	return entities.NewDependencySnapshot(records)
}

func TestRegistryResolverRepository(t *testing.T) {
	t.Parallel()

	t.Run("should propose the latest version and keep the range operator", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("left-pad", "^1.0.0", "express", "~3.0.0", "@types/node", "18.0.0")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetLatest))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.ResolvedCandidate{
			{Name: "left-pad", LatestAllowed: "^1.3.0"},
			{Name: "express", LatestAllowed: "~5.0.0"},
			{Name: "@types/node", LatestAllowed: "20.1.0"},
		}, resolved)
	})

	t.Run("should report nothing once the applied versions are current", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("left-pad", "^1.3.0", "express", "5.0.0")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetLatest))

		// then
		require.NoError(t, err)
		assert.Empty(t, resolved)
	})

	t.Run("should propose a bare version for compound ranges", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("left-pad", ">=1.0 <1.2.0", "express", "3.x || 4.0.0")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetLatest))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.ResolvedCandidate{
			{Name: "left-pad", LatestAllowed: "1.3.0"},
			{Name: "express", LatestAllowed: "5.0.0"},
		}, resolved)
		assert.Equal(t, entities.TierMajor, entities.ClassifyUpdate("3.x || 4.0.0", resolved[1].LatestAllowed))
	})

	t.Run("should bound a compound range by its lower version for the minor target", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("express", ">=3.0 <4.0.0")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetMinor))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.ResolvedCandidate{{Name: "express", LatestAllowed: "3.21.2"}}, resolved)
	})

	t.Run("should stay within the current major for the minor target", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("express", "^3.0.0")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetMinor))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.ResolvedCandidate{{Name: "express", LatestAllowed: "^3.21.2"}}, resolved)
	})

	t.Run("should stay within the current minor for the patch target", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("@types/node", "^18.0.0", "left-pad", "1.1.0")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetPatch))

		// then
		require.NoError(t, err)
		assert.Empty(t, resolved)
	})

	t.Run("should skip packages missing from the registry", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("private-thing", "^1.0.0", "left-pad", "^1.0.0")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetLatest))

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.ResolvedCandidate{{Name: "left-pad", LatestAllowed: "^1.3.0"}}, resolved)
	})

	t.Run("should fail with a resolution error on a registry fault", func(t *testing.T) {
		t.Parallel()

		// given
		server := newRegistry(t, nil)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("broken", "^1.0.0")

		// when
		_, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetLatest))

		// then
		var resolutionErr *entities.ResolutionError
		require.ErrorAs(t, err, &resolutionErr)
		assert.Equal(t, "broken", resolutionErr.Package)
	})

	t.Run("should not query the registry for non-registry specifiers", func(t *testing.T) {
		t.Parallel()

		// given
		var hits atomic.Int32
		server := newRegistry(t, &hits)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		snapshot := snapshotOf("left-pad", "github:stevemao/left-pad", "express", "file:../express")

		// when
		resolved, err := resolver.Resolve(context.Background(), snapshot, settingsFor(server, entities.TargetLatest))

		// then
		require.NoError(t, err)
		assert.Empty(t, resolved)
		assert.Zero(t, hits.Load())
	})

	t.Run("should send the registry token", func(t *testing.T) {
		t.Parallel()

		// given
		var authorization atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization.Store(r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(packuments["left-pad"]))
		}))
		t.Cleanup(server.Close)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		settings := settingsFor(server, entities.TargetLatest)
		settings.Token = "s3cret"

		// when
		_, err := resolver.Resolve(context.Background(), snapshotOf("left-pad", "^1.0.0"), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Bearer s3cret", authorization.Load())
	})

	t.Run("should serve source URLs from the documents fetched during resolution", func(t *testing.T) {
		t.Parallel()

		// given
		var hits atomic.Int32
		server := newRegistry(t, &hits)
		resolver := npm.NewRegistryResolverRepository(server.Client())
		_, err := resolver.Resolve(context.Background(), snapshotOf("left-pad", "^1.0.0"),
			settingsFor(server, entities.TargetLatest))
		require.NoError(t, err)

		// when
		url, err := resolver.SourceURL(context.Background(), "left-pad")

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/stevemao/left-pad", url)
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestSourceURLOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		repository string
		homepage   string
		expected   string
	}{
		{name: "should normalise a git+https object", repository: `{"url":"git+https://github.com/a/b.git"}`, expected: "https://github.com/a/b"},
		{name: "should expand the user/repo shorthand", repository: `"a/b"`, expected: "https://github.com/a/b"},
		{name: "should expand a host shorthand", repository: `"gitlab:a/b"`, expected: "https://gitlab.com/a/b"},
		{name: "should convert scp-like ssh URLs", repository: `"git@github.com:a/b.git"`, expected: "https://github.com/a/b"},
		{name: "should convert git protocol URLs", repository: `"git://github.com/a/b.git"`, expected: "https://github.com/a/b"},
		{name: "should link monorepo directories", repository: `{"url":"https://github.com/a/mono","directory":"packages/b"}`, expected: "https://github.com/a/mono/tree/HEAD/packages/b"},
		{name: "should fall back to the homepage", homepage: "https://b.dev", expected: "https://b.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			doc := &npm.PackageDocument{Homepage: tt.homepage}
			if tt.repository != "" {
				doc.Repository = json.RawMessage(tt.repository)
			}

			// when
			url, err := npm.SourceURLOf(doc)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, url)
		})
	}

	t.Run("should report an error when nothing is declared", func(t *testing.T) {
		t.Parallel()

		// given
		doc := &npm.PackageDocument{}

		// when
		_, err := npm.SourceURLOf(doc)

		// then
		assert.Error(t, err)
	})
}

func TestIsRegistrySpecifier(t *testing.T) {
	t.Parallel()

	t.Run("should accept semver ranges and reject other sources", func(t *testing.T) {
		t.Parallel()

		// given
		accepted := []string{"^1.0.0", "~2.1", "1.2.3", ">=3", "1.x"}
		rejected := []string{
			"", "*", "latest", "github:a/b", "a/b", "file:../x", "link:../x", "workspace:*",
			"https://example.com/x.tgz", "git+ssh://git@github.com/a/b.git", "npm:other@^1.0.0",
		}

		// when / then
		for _, spec := range accepted {
			assert.True(t, npm.IsRegistrySpecifier(spec), spec)
		}
		for _, spec := range rejected {
			assert.False(t, npm.IsRegistrySpecifier(spec), spec)
		}
	})
}

func TestKeepRangeOperator(t *testing.T) {
	t.Parallel()

	t.Run("should carry over the leading operator", func(t *testing.T) {
		t.Parallel()

		// given
		cases := map[string]string{
			"^1.0.0": "^2.0.0", "~1.0.0": "~2.0.0", ">=1.0.0": ">=2.0.0", "1.0.0": "2.0.0", ">= 1.0.0": ">=2.0.0",
		}

		for current, expected := range cases {
			// when
			result := npm.KeepRangeOperator(current, "2.0.0")

			// then
			assert.Equal(t, expected, result)
		}
	})
}

func TestIsCompoundRange(t *testing.T) {
	t.Parallel()

	t.Run("should detect ranges made of several comparators", func(t *testing.T) {
		t.Parallel()

		// given
		compound := []string{">=1.2 <3.0.0", "1.x || 2.0.0", "1 - 2.3.4", "^1.0.0 || ^2.0.0"}
		simple := []string{"^1.0.0", ">= 1.2.0", "~2.1", "1.2.3"}

		// when / then
		for _, spec := range compound {
			assert.True(t, npm.IsCompoundRange(spec), spec)
		}
		for _, spec := range simple {
			assert.False(t, npm.IsCompoundRange(spec), spec)
		}
	})

	t.Run("should replace a compound range with the bare version", func(t *testing.T) {
		t.Parallel()

		// given
		current := ">=1.2 <3.0.0"

		// when
		result := npm.KeepRangeOperator(current, "3.1.0")

		// then
		assert.Equal(t, "3.1.0", result)
	})
}
