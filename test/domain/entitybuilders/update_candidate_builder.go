//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// UpdateCandidateBuilder helps create catalog entries with a fluent interface.
// Tier and default selection are derived from the versions unless set explicitly.
type UpdateCandidateBuilder struct {
	*testkit.BaseBuilder
	name            string
	currentRange    string
	proposedVersion string
	section         entities.Section
	sourceURL       string
	tier            *entities.RiskTier
}

// NewUpdateCandidateBuilder creates a new builder with sensible defaults.
func NewUpdateCandidateBuilder() *UpdateCandidateBuilder {
	return &UpdateCandidateBuilder{
		BaseBuilder:     testkit.NewBaseBuilder(),
		name:            "left-pad",
		currentRange:    "^1.0.0",
		proposedVersion: "^1.3.0",
		section:         entities.SectionDirect,
	}
}

// WithName sets the package name.
func (b *UpdateCandidateBuilder) WithName(name string) *UpdateCandidateBuilder {
	b.name = name
	return b
}

// WithVersions sets the current specifier and the proposed version.
func (b *UpdateCandidateBuilder) WithVersions(current, proposed string) *UpdateCandidateBuilder {
	b.currentRange = current
	b.proposedVersion = proposed
	return b
}

// WithSection sets the declaring section.
func (b *UpdateCandidateBuilder) WithSection(section entities.Section) *UpdateCandidateBuilder {
	b.section = section
	return b
}

// WithSourceURL sets the source URL.
func (b *UpdateCandidateBuilder) WithSourceURL(url string) *UpdateCandidateBuilder {
	b.sourceURL = url
	return b
}

// WithTier overrides the classified tier.
func (b *UpdateCandidateBuilder) WithTier(tier entities.RiskTier) *UpdateCandidateBuilder {
	b.tier = &tier
	return b
}

// Build creates the candidate (satisfies testkit.Builder interface).
func (b *UpdateCandidateBuilder) Build() interface{} {
	return b.BuildCandidate()
}

// BuildCandidate creates the candidate with a concrete return type.
func (b *UpdateCandidateBuilder) BuildCandidate() entities.UpdateCandidate {
	tier := entities.ClassifyUpdate(b.currentRange, b.proposedVersion)
	if b.tier != nil {
		tier = *b.tier
	}
	return entities.UpdateCandidate{
		Name:            b.name,
		CurrentRange:    b.currentRange,
		ProposedVersion: b.proposedVersion,
		Section:         b.section,
		Tier:            tier,
		DefaultSelected: entities.DefaultSelected(tier),
		SourceURL:       b.sourceURL,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *UpdateCandidateBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "left-pad"
	b.currentRange = "^1.0.0"
	b.proposedVersion = "^1.3.0"
	b.section = entities.SectionDirect
	b.sourceURL = ""
	b.tier = nil
	return b
}

// Clone creates a deep copy of the UpdateCandidateBuilder.
func (b *UpdateCandidateBuilder) Clone() testkit.Builder {
	clone := &UpdateCandidateBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:            b.name,
		currentRange:    b.currentRange,
		proposedVersion: b.proposedVersion,
		section:         b.section,
		sourceURL:       b.sourceURL,
	}
	if b.tier != nil {
		tier := *b.tier
		clone.tier = &tier
	}
	return clone
}
