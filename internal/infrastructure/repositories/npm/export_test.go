package npm

// PackageDocument exports packageDocument for testing.
type PackageDocument = packageDocument

// SourceURLOf exports sourceURLOf for testing.
var SourceURLOf = sourceURLOf //nolint:gochecknoglobals // test export

// IsRegistrySpecifier exports isRegistrySpecifier for testing.
var IsRegistrySpecifier = isRegistrySpecifier //nolint:gochecknoglobals // test export

// KeepRangeOperator exports keepRangeOperator for testing.
var KeepRangeOperator = keepRangeOperator //nolint:gochecknoglobals // test export

// IsCompoundRange exports isCompoundRange for testing.
var IsCompoundRange = isCompoundRange //nolint:gochecknoglobals // test export
