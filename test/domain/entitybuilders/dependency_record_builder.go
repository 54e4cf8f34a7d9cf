//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/npmpick/internal/domain/entities"
)

// DependencyRecordBuilder helps create declared dependencies with a fluent interface.
type DependencyRecordBuilder struct {
	*testkit.BaseBuilder
	name         string
	currentRange string
	section      entities.Section
}

// NewDependencyRecordBuilder creates a new builder with sensible defaults.
func NewDependencyRecordBuilder() *DependencyRecordBuilder {
	return &DependencyRecordBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		name:         "left-pad",
		currentRange: "^1.0.0",
		section:      entities.SectionDirect,
	}
}

// WithName sets the package name.
func (b *DependencyRecordBuilder) WithName(name string) *DependencyRecordBuilder {
	b.name = name
	return b
}

// WithCurrentRange sets the declared specifier.
func (b *DependencyRecordBuilder) WithCurrentRange(currentRange string) *DependencyRecordBuilder {
	b.currentRange = currentRange
	return b
}

// AsDevelopment declares the dependency under devDependencies.
func (b *DependencyRecordBuilder) AsDevelopment() *DependencyRecordBuilder {
	b.section = entities.SectionDevelopment
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *DependencyRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *DependencyRecordBuilder) BuildRecord() entities.DependencyRecord {
	return entities.DependencyRecord{
		Name:         b.name,
		CurrentRange: b.currentRange,
		Section:      b.section,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "left-pad"
	b.currentRange = "^1.0.0"
	b.section = entities.SectionDirect
	return b
}

// Clone creates a deep copy of the DependencyRecordBuilder.
func (b *DependencyRecordBuilder) Clone() testkit.Builder {
	return &DependencyRecordBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		currentRange: b.currentRange,
		section:      b.section,
	}
}
