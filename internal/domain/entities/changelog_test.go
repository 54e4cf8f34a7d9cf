//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
	"github.com/rios0rios0/npmpick/test/domain/entitybuilders"
)

func TestChangelogEntries(t *testing.T) {
	t.Parallel()

	t.Run("should render one bullet per applied update", func(t *testing.T) {
		t.Parallel()

		// given
		applied := []entities.UpdateCandidate{
			entitybuilders.NewUpdateCandidateBuilder().WithName("left-pad").
				WithVersions("^1.0.0", "^1.3.0").BuildCandidate(),
		}

		// when
		entries := entities.ChangelogEntries(applied)

		// then
		assert.Equal(t, []string{"- changed the `left-pad` dependency from `^1.0.0` to `^1.3.0`"}, entries)
	})
}

func TestInsertChangelogEntry(t *testing.T) {
	t.Parallel()

	t.Run("should create a Changed subsection under Unreleased", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2024-01-01"

		// when
		result := entities.InsertChangelogEntry(content, []string{"- new"})

		// then
		assert.Equal(t,
			"# Changelog\n\n## [Unreleased]\n\n### Changed\n\n- new\n\n## [1.0.0] - 2024-01-01",
			result)
	})

	t.Run("should append after the last existing bullet", func(t *testing.T) {
		t.Parallel()

		// given
		content := "## [Unreleased]\n\n### Changed\n\n- existing\n\n## [1.0.0]"

		// when
		result := entities.InsertChangelogEntry(content, []string{"- new"})

		// then
		assert.Equal(t, "## [Unreleased]\n\n### Changed\n\n- existing\n- new\n\n## [1.0.0]", result)
	})

	t.Run("should leave content without an Unreleased section untouched", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [1.0.0]\n"

		// when
		result := entities.InsertChangelogEntry(content, []string{"- new"})

		// then
		assert.Equal(t, content, result)
	})
}
